package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/skillmate/service/internal/command"
	"github.com/skillmate/service/internal/models"
)

// ============================================================================
// 🔗 WebSocket处理器 - 命令栏的长连接通道
// ============================================================================

// WebSocket升级器
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 允许所有来源的连接（生产环境中应该限制）
		return true
	},
}

// HandleWebSocket 升级连接后按帧处理命令，每帧回写一个结果帧
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = command.DefaultUserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] 升级连接失败: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[WebSocket] 连接已建立: userID=%s", userID)

	for {
		var frame models.WSCommandFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocket] 连接异常断开: userID=%s err=%v", userID, err)
			}
			return
		}

		if frame.Type != "command" {
			conn.WriteJSON(&models.WSResultFrame{
				Type:  "error",
				Error: "Unsupported frame type: " + frame.Type,
			})
			continue
		}

		// 帧内userId优先于连接参数，便于一条连接服务多个标签页
		frameUserID := frame.UserID
		if frameUserID == "" {
			frameUserID = userID
		}

		result, _ := h.commandService.ProcessCommand(c.Request.Context(), frameUserID, frame.Command)
		if err := conn.WriteJSON(&models.WSResultFrame{
			Type:   "result",
			Result: result,
		}); err != nil {
			log.Printf("[WebSocket] 写结果帧失败: userID=%s err=%v", frameUserID, err)
			return
		}
	}
}
