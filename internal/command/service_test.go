package command

import (
	"context"
	"errors"
	"testing"

	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
)

// seqLLMClient 按顺序返回预设响应，超出后返回最后一条
type seqLLMClient struct {
	responses []string
	calls     int
}

func (s *seqLLMClient) Complete(_ context.Context, _ *llm.LLMRequest) (*llm.LLMResponse, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return &llm.LLMResponse{Content: s.responses[idx], Model: "test-model"}, nil
}

func (s *seqLLMClient) HealthCheck(context.Context) error { return nil }
func (s *seqLLMClient) GetModel() string                  { return "test-model" }

// 测试讲解命令的端到端流程：分类→路由→执行→记忆
func TestProcessCommandExplainFlow(t *testing.T) {
	client := &seqLLMClient{responses: []string{
		`{"intent": "EXPLAIN_CONCEPT", "topic": "recursion", "confidence": 0.95, "context": "wants explanation"}`,
		"Recursion is when a function calls itself.",
	}}
	memory := newTestMemory(t)
	service := NewService(client, memory)

	result, intent := service.ProcessCommand(context.Background(), "u1", "what is recursion?")
	if intent.Intent != models.IntentExplainConcept {
		t.Fatalf("intent = %s", intent.Intent)
	}
	if !result.Success || result.Type != models.ResultMessage {
		t.Fatalf("result: %+v", result)
	}
	if result.Message != "Recursion is when a function calls itself." {
		t.Errorf("message = %q", result.Message)
	}
	if !memory.WasConceptExplained("u1", "recursion", "") {
		t.Error("端到端流程后概念应记录到记忆")
	}
}

// 测试低置信度分类端到端落到NO_ACTION
func TestProcessCommandLowConfidence(t *testing.T) {
	client := &seqLLMClient{responses: []string{
		`{"intent": "NAVIGATE", "confidence": 0.1, "context": "unclear"}`,
	}}
	service := NewService(client, newTestMemory(t))

	result, _ := service.ProcessCommand(context.Background(), "u1", "hmm maybe somewhere")
	if !result.Success || result.Type != models.ResultNoAction {
		t.Errorf("低置信度应NO_ACTION: %+v", result)
	}
}

// 测试LLM完全不可用时的纯离线通路
func TestProcessCommandOfflineFallback(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("api down")}
	memory := newTestMemory(t)
	service := NewService(client, memory)

	result, intent := service.ProcessCommand(context.Background(), "u1", "start the aptitude test")
	if intent.Intent != models.IntentStartAptitudeTest {
		t.Fatalf("降级分类错误: %s", intent.Intent)
	}
	if !result.Success || result.Type != models.ResultNavigation || result.Route != "/assessment/start" {
		t.Fatalf("离线通路结果错误: %+v", result)
	}
	if !memory.WasActionCompleted("u1", models.ActionAptitudeTestStarted) {
		t.Error("测评启动应记录到记忆")
	}
}

// 测试空命令与默认用户
func TestProcessCommandDefaults(t *testing.T) {
	client := &fakeLLMClient{content: `{"intent": "GENERAL_QUESTION", "confidence": 0.8, "context": ""}`}
	memory := newTestMemory(t)
	service := NewService(client, memory)

	// 空命令不触发LLM，直接NO_ACTION
	result, intent := service.ProcessCommand(context.Background(), "u1", "   ")
	if client.calls != 0 {
		t.Errorf("空命令不应触发LLM调用, 实际 %d 次", client.calls)
	}
	if intent.Intent != models.IntentUnknown || result.Type != models.ResultNoAction {
		t.Errorf("空命令应NO_ACTION: intent=%s result=%+v", intent.Intent, result)
	}

	// 缺失userID归到默认用户
	service.ProcessCommand(context.Background(), "", "tell me about college life")
	ctx := memory.GetPersonalizationContext(DefaultUserID)
	if ctx.RecentContext.LastIntent != string(models.IntentGeneralQuestion) {
		t.Errorf("默认用户交互未记录: %q", ctx.RecentContext.LastIntent)
	}
}
