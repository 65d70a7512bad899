package llm

import (
	"context"
	"time"
)

// =============================================================================
// 核心类型定义
// =============================================================================

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage 对话消息
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LLMRequest 统一的LLM请求结构
type LLMRequest struct {
	Messages    []ChatMessage          `json:"messages"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
	Model       string                 `json:"model,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// LLMResponse 统一的LLM响应结构
// Content 取首个choice的消息内容，管线不使用其余choice
type LLMResponse struct {
	Content    string        `json:"content"`
	TokensUsed int           `json:"tokens_used"`
	Model      string        `json:"model"`
	Duration   time.Duration `json:"duration"`
}

// LLMClient 文本生成服务客户端接口
type LLMClient interface {
	Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
	HealthCheck(ctx context.Context) error
	GetModel() string
}

// LLMConfig 客户端配置
type LLMConfig struct {
	APIKey     string        `json:"api_key"`
	BaseURL    string        `json:"base_url"`
	Model      string        `json:"model"`
	Timeout    time.Duration `json:"timeout"`
	RateLimit  int           `json:"rate_limit"` // requests per minute
	MaxRetries int           `json:"max_retries"`
}

// LLMError LLM错误类型
type LLMError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *LLMError) Error() string {
	return "llm: [" + e.Code + "] " + e.Message
}
