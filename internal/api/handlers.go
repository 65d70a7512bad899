package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillmate/service/internal/command"
	"github.com/skillmate/service/internal/config"
	"github.com/skillmate/service/internal/intelligence"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/utils"
)

// ============================================================================
// 🌐 HTTP处理器 - 命令入口 + 记忆透明度接口
// ============================================================================

// Handler API处理器
type Handler struct {
	commandService *command.Service
	config         *config.Config
	startTime      time.Time
}

// NewHandler 创建API处理器
func NewHandler(commandService *command.Service, cfg *config.Config) *Handler {
	return &Handler{
		commandService: commandService,
		config:         cfg,
		startTime:      time.Now(),
	}
}

// RegisterRoutes 注册全部路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HandleHealth)

	ai := r.Group("/api/ai")
	{
		ai.POST("/command", h.HandleCommand)
		ai.GET("/memory/summary", h.HandleMemorySummary)
		ai.PUT("/memory/style", h.HandleUpdateStyle)
		ai.DELETE("/memory", h.HandleClearMemory)
		ai.GET("/domains/:domain/preview", h.HandleDomainPreview)
		ai.GET("/ws", h.HandleWebSocket)
	}
}

// HandleHealth 健康检查
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.config.ServiceName,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// HandleCommand 处理自然语言命令
// 管线各级自带兜底，此接口对合法请求永远返回200
func (h *Handler) HandleCommand(c *gin.Context) {
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, intent := h.commandService.ProcessCommand(c.Request.Context(), req.UserID, req.Command)

	c.JSON(http.StatusOK, &models.CommandResponse{
		Result:  result,
		Intent:  intent,
		TraceID: utils.GetTraceIDFromGin(c),
	})
}

// HandleMemorySummary 返回用户记忆摘要，供学生查看系统记住了什么
func (h *Handler) HandleMemorySummary(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = command.DefaultUserID
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":         h.commandService.Memory().Summary(userID),
		"personalization": h.commandService.Memory().GetPersonalizationContext(userID),
	})
}

// HandleUpdateStyle 更新讲解风格偏好
func (h *Handler) HandleUpdateStyle(c *gin.Context) {
	var req models.UpdateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}
	if !models.IsValidExplanationStyle(req.Style) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid style: " + req.Style,
		})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = command.DefaultUserID
	}
	h.commandService.Memory().UpdateExplanationStyle(userID, models.ExplanationStyle(req.Style))

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"style":  req.Style,
	})
}

// HandleClearMemory 清空用户记忆
func (h *Handler) HandleClearMemory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = command.DefaultUserID
	}
	h.commandService.Memory().Clear(userID)

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleDomainPreview 生成某个CS方向的"一天是什么样"预览
func (h *Handler) HandleDomainPreview(c *gin.Context) {
	domainParam := c.Param("domain")
	domain, ok := models.ParseDomain(domainParam)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown domain: " + domainParam,
		})
		return
	}

	preview := h.commandService.Generator().GenerateDomainPreview(c.Request.Context(), &intelligence.DomainPreviewInput{
		Domain:       string(domain),
		StudentLevel: intelligence.LevelFirstYear,
	})

	c.JSON(http.StatusOK, gin.H{
		"domain":  string(domain),
		"preview": preview,
	})
}
