package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillmate/service/internal/command"
	"github.com/skillmate/service/internal/config"
	"github.com/skillmate/service/internal/intelligence"
	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// logToolCall 记录工具调用的详细日志
func logToolCall(name string, request map[string]interface{}, response interface{}, err error, duration time.Duration) {
	requestJSON, jsonErr := json.MarshalIndent(request, "", "  ")
	if jsonErr != nil {
		requestJSON = []byte(fmt.Sprintf("无法序列化请求: %v", jsonErr))
	}

	var responseJSON []byte
	if err != nil {
		responseJSON = []byte(fmt.Sprintf("错误: %v", err))
	} else {
		responseJSON, jsonErr = json.MarshalIndent(response, "", "  ")
		if jsonErr != nil {
			responseJSON = []byte(fmt.Sprintf("无法序列化响应: %v", jsonErr))
		}
	}

	divider := "====================================================="
	log.Printf("\n%s\n[工具调用: %s]\n%s", divider, name, divider)
	log.Printf("耗时: %v", duration)
	log.Printf("请求参数:\n%s", string(requestJSON))
	log.Printf("响应结果:\n%s", string(responseJSON))
	if err != nil {
		log.Printf("错误: %v", err)
	}
	log.Printf("%s\n[工具调用结束: %s]\n%s\n", divider, name, divider)
}

// initializeServices 初始化共享服务组件：LLM客户端、记忆存储、命令管线
func initializeServices() (*command.Service, *config.Config) {
	cfg := config.Load()
	log.Printf("加载配置: %s", cfg.String())

	apiKey := getEnv("LONGCAT_API_KEY", cfg.LongCatAPIKey)
	isHTTPMode := os.Getenv("HTTP_MODE") == "true"

	if apiKey == "" {
		if !isHTTPMode {
			// STDIO模式需要完整配置
			log.Fatalf("错误: LONGCAT_API_KEY 未设置")
		}
		// HTTP模式警告但不退出，命令管线会降级到关键词规则
		log.Printf("警告: LONGCAT_API_KEY 未设置，意图分类与内容生成将降级到内置规则")
	}

	client, err := llm.NewLongCatClient(&llm.LLMConfig{
		APIKey:     apiKey,
		BaseURL:    cfg.LongCatBaseURL,
		Model:      cfg.LongCatModel,
		Timeout:    cfg.LLMTimeout,
		RateLimit:  cfg.LLMRateLimit,
		MaxRetries: cfg.LLMMaxRetries,
	})
	if err != nil {
		if !isHTTPMode {
			log.Fatalf("错误: 创建LLM客户端失败: %v", err)
		}
		log.Printf("警告: 创建LLM客户端失败: %v", err)
		client = nil
	}

	memory, err := store.NewMemoryStore(cfg.StoragePath)
	if err != nil {
		log.Fatalf("错误: 初始化记忆存储失败: %v", err)
	}
	log.Printf("记忆存储就绪: %s", memory.GetStorePath())

	var llmClient llm.LLMClient
	if client != nil {
		llmClient = client
	} else {
		llmClient = unavailableLLMClient{}
	}

	return command.NewService(llmClient, memory), cfg
}

// unavailableLLMClient 缺少API密钥时的空客户端，所有调用返回错误让管线走降级路径
type unavailableLLMClient struct{}

func (unavailableLLMClient) Complete(context.Context, *llm.LLMRequest) (*llm.LLMResponse, error) {
	return nil, &llm.LLMError{Code: "NOT_CONFIGURED", Message: "LLM client is not configured"}
}

func (unavailableLLMClient) HealthCheck(context.Context) error {
	return &llm.LLMError{Code: "NOT_CONFIGURED", Message: "LLM client is not configured"}
}

func (unavailableLLMClient) GetModel() string { return "none" }

// registerMCPTools 注册所有MCP工具到服务器
func registerMCPTools(s *server.MCPServer, commandService *command.Service) {
	// 注册工具：处理命令
	processCommandTool := mcp.NewTool("process_command",
		mcp.WithDescription("处理学生在命令栏输入的自然语言命令"),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("学生输入的自然语言命令"),
		),
		mcp.WithString("userId",
			mcp.Description("学生标识，缺省使用default"),
		),
	)
	s.AddTool(processCommandTool, processCommandHandler(commandService))

	// 注册工具：记忆摘要
	memorySummaryTool := mcp.NewTool("memory_summary",
		mcp.WithDescription("查看系统为某个学生记住了哪些个性化信息"),
		mcp.WithString("userId",
			mcp.Description("学生标识，缺省使用default"),
		),
	)
	s.AddTool(memorySummaryTool, memorySummaryHandler(commandService))

	// 注册工具：方向预览
	domainPreviewTool := mcp.NewTool("domain_preview",
		mcp.WithDescription("生成某个CS方向的日常工作预览"),
		mcp.WithString("domain",
			mcp.Required(),
			mcp.Description("CS方向名称，例如 AI & Machine Learning"),
		),
	)
	s.AddTool(domainPreviewTool, domainPreviewHandler(commandService))

	// 注册工具：清空记忆
	clearMemoryTool := mcp.NewTool("clear_memory",
		mcp.WithDescription("清空某个学生的个性化记忆"),
		mcp.WithString("userId",
			mcp.Description("学生标识，缺省使用default"),
		),
	)
	s.AddTool(clearMemoryTool, clearMemoryHandler(commandService))
}

func processCommandHandler(commandService *command.Service) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		cmd, ok := request.Params.Arguments["command"].(string)
		if !ok || cmd == "" {
			errMsg := "错误: command必须是非空字符串"
			log.Println(errMsg)
			logToolCall("process_command", request.Params.Arguments, errMsg, fmt.Errorf(errMsg), time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}
		userID, _ := request.Params.Arguments["userId"].(string)

		result, intent := commandService.ProcessCommand(ctx, userID, cmd)
		response := &models.CommandResponse{Result: result, Intent: intent}

		payload, err := json.Marshal(response)
		if err != nil {
			errMsg := fmt.Sprintf("序列化结果失败: %v", err)
			logToolCall("process_command", request.Params.Arguments, errMsg, err, time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}

		logToolCall("process_command", request.Params.Arguments, response, nil, time.Since(startTime))
		return mcp.NewToolResultText(string(payload)), nil
	}
}

func memorySummaryHandler(commandService *command.Service) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		userID, _ := request.Params.Arguments["userId"].(string)
		if userID == "" {
			userID = command.DefaultUserID
		}

		summary := map[string]interface{}{
			"summary":         commandService.Memory().Summary(userID),
			"personalization": commandService.Memory().GetPersonalizationContext(userID),
		}
		payload, err := json.Marshal(summary)
		if err != nil {
			errMsg := fmt.Sprintf("序列化摘要失败: %v", err)
			logToolCall("memory_summary", request.Params.Arguments, errMsg, err, time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}

		logToolCall("memory_summary", request.Params.Arguments, summary, nil, time.Since(startTime))
		return mcp.NewToolResultText(string(payload)), nil
	}
}

func domainPreviewHandler(commandService *command.Service) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		domainParam, ok := request.Params.Arguments["domain"].(string)
		if !ok || domainParam == "" {
			errMsg := "错误: domain必须是非空字符串"
			log.Println(errMsg)
			logToolCall("domain_preview", request.Params.Arguments, errMsg, fmt.Errorf(errMsg), time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}

		domain, valid := models.ParseDomain(domainParam)
		if !valid {
			errMsg := fmt.Sprintf("错误: 未知的CS方向: %s", domainParam)
			log.Println(errMsg)
			logToolCall("domain_preview", request.Params.Arguments, errMsg, fmt.Errorf(errMsg), time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}

		preview := commandService.Generator().GenerateDomainPreview(ctx, &intelligence.DomainPreviewInput{
			Domain:       string(domain),
			StudentLevel: intelligence.LevelFirstYear,
		})
		payload, err := json.Marshal(preview)
		if err != nil {
			errMsg := fmt.Sprintf("序列化预览失败: %v", err)
			logToolCall("domain_preview", request.Params.Arguments, errMsg, err, time.Since(startTime))
			return mcp.NewToolResultText(errMsg), nil
		}

		logToolCall("domain_preview", request.Params.Arguments, preview, nil, time.Since(startTime))
		return mcp.NewToolResultText(string(payload)), nil
	}
}

func clearMemoryHandler(commandService *command.Service) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		userID, _ := request.Params.Arguments["userId"].(string)
		if userID == "" {
			userID = command.DefaultUserID
		}

		commandService.Memory().Clear(userID)
		response := fmt.Sprintf("已清空用户 %s 的记忆", userID)

		logToolCall("clear_memory", request.Params.Arguments, response, nil, time.Since(startTime))
		return mcp.NewToolResultText(response), nil
	}
}

// 从环境变量获取字符串值，允许覆盖配置
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
