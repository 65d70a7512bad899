package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// =============================================================================
// LongCat客户端实现 - OpenAI兼容的chat completions接口
// =============================================================================

const (
	defaultLongCatBaseURL = "https://api.longcat.chat/openai/v1"
	defaultLongCatModel   = "LongCat-Flash-Chat"
)

// LongCatClient LongCat适配器
type LongCatClient struct {
	*BaseAdapter
	apiKey  string
	baseURL string
	model   string
}

// longCatRequest LongCat请求格式（OpenAI兼容）
type longCatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// longCatResponse LongCat响应格式
type longCatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// longCatErrorResponse LongCat错误响应
type longCatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewLongCatClient 创建LongCat客户端
func NewLongCatClient(config *LLMConfig) (*LongCatClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("LongCat API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultLongCatBaseURL
	}

	model := config.Model
	if model == "" {
		model = defaultLongCatModel
	}

	return &LongCatClient{
		BaseAdapter: NewBaseAdapter(config),
		apiKey:      config.APIKey,
		baseURL:     baseURL,
		model:       model,
	}, nil
}

// Complete 完成对话
func (lc *LongCatClient) Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error) {
	startTime := time.Now()

	// 1. 检查限流
	if err := lc.CheckRateLimit(ctx); err != nil {
		return nil, err
	}

	// 2. 检查熔断器
	if err := lc.CheckCircuitBreaker(); err != nil {
		return nil, err
	}

	// 3. 转换请求格式并发送
	apiReq := lc.convertRequest(req)
	resp, err := lc.sendRequest(ctx, apiReq)
	if err != nil {
		lc.RecordFailure()
		return nil, err
	}
	lc.RecordSuccess()

	result := lc.convertResponse(resp, time.Since(startTime))
	log.Printf("[LongCat] 请求完成: model=%s tokens=%d duration=%v",
		result.Model, result.TokensUsed, result.Duration)

	return result, nil
}

// HealthCheck 健康检查
func (lc *LongCatClient) HealthCheck(ctx context.Context) error {
	req := &LLMRequest{
		Messages:    []ChatMessage{{Role: RoleUser, Content: "Hello"}},
		MaxTokens:   1,
		Temperature: 0,
	}

	_, err := lc.Complete(ctx, req)
	return err
}

// GetModel 获取模型名称
func (lc *LongCatClient) GetModel() string {
	return lc.model
}

// convertRequest 转换为LongCat格式
func (lc *LongCatClient) convertRequest(req *LLMRequest) *longCatRequest {
	model := req.Model
	if model == "" {
		model = lc.model
	}

	return &longCatRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}

// convertResponse 转换LongCat响应格式，内容取首个choice
func (lc *LongCatClient) convertResponse(resp *longCatResponse, duration time.Duration) *LLMResponse {
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &LLMResponse{
		Content:    content,
		TokensUsed: resp.Usage.TotalTokens,
		Model:      resp.Model,
		Duration:   duration,
	}
}

// sendRequest 发送HTTP请求
func (lc *LongCatClient) sendRequest(ctx context.Context, req *longCatRequest) (*longCatResponse, error) {
	// 序列化请求
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	// 创建HTTP请求
	httpReq, err := http.NewRequestWithContext(ctx, "POST", lc.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	// 设置请求头
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+lc.apiKey)

	// 发送请求
	httpResp, err := lc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request failed: %w", err)
	}
	defer httpResp.Body.Close()

	// 读取响应
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	// 检查HTTP状态码
	if httpResp.StatusCode != http.StatusOK {
		var errorResp longCatErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error.Message != "" {
			return nil, &LLMError{
				Code:      errorResp.Error.Code,
				Message:   errorResp.Error.Message,
				Retryable: httpResp.StatusCode >= 500,
			}
		}
		return nil, fmt.Errorf("HTTP %d: %s", httpResp.StatusCode, string(respBody))
	}

	// 解析响应
	var resp longCatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	return &resp, nil
}
