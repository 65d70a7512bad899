package command

import (
	"context"
	"errors"
	"testing"

	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// fakeLLMClient 固定返回预设内容或错误
type fakeLLMClient struct {
	content string
	err     error
	calls   int
	lastReq *llm.LLMRequest
}

func (f *fakeLLMClient) Complete(_ context.Context, req *llm.LLMRequest) (*llm.LLMResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.LLMResponse{Content: f.content, Model: "test-model"}, nil
}

func (f *fakeLLMClient) HealthCheck(context.Context) error { return f.err }
func (f *fakeLLMClient) GetModel() string                  { return "test-model" }

func newTestMemory(t *testing.T) *store.MemoryStore {
	t.Helper()
	memory, err := store.NewMemoryStore(t.TempDir())
	if err != nil {
		t.Fatalf("创建记忆存储失败: %v", err)
	}
	return memory
}

// 测试空输入不触发LLM调用
func TestClassifyEmptyInput(t *testing.T) {
	client := &fakeLLMClient{}
	classifier := NewClassifier(client, newTestMemory(t))

	for _, input := range []string{"", "   ", "\n\t"} {
		intent := classifier.Classify(context.Background(), "u1", input)
		if intent.Intent != models.IntentUnknown {
			t.Errorf("空输入应返回UNKNOWN, 实际 %s", intent.Intent)
		}
		if intent.Confidence != 0 {
			t.Errorf("空输入置信度应为0, 实际 %v", intent.Confidence)
		}
	}
	if client.calls != 0 {
		t.Errorf("空输入不应触发LLM调用, 实际调用 %d 次", client.calls)
	}
}

// 测试LLM分类输出的解析与交互记录
func TestClassifySuccess(t *testing.T) {
	client := &fakeLLMClient{content: `{"intent": "EXPLAIN_CONCEPT", "topic": "AI", "confidence": 0.95, "context": "wants explanation"}`}
	memory := newTestMemory(t)
	classifier := NewClassifier(client, memory)

	intent := classifier.Classify(context.Background(), "u1", "I don't understand AI")
	if intent.Intent != models.IntentExplainConcept {
		t.Errorf("intent = %s", intent.Intent)
	}
	if intent.Topic != "AI" || intent.Confidence != 0.95 {
		t.Errorf("topic=%q confidence=%v", intent.Topic, intent.Confidence)
	}
	if client.lastReq.MaxTokens != 500 || client.lastReq.Temperature != 0.1 {
		t.Errorf("分类请求参数错误: tokens=%d temp=%v",
			client.lastReq.MaxTokens, client.lastReq.Temperature)
	}

	// 交互已记录
	ctx := memory.GetPersonalizationContext("u1")
	if ctx.RecentContext.LastIntent != string(models.IntentExplainConcept) {
		t.Errorf("交互意图未记录: %q", ctx.RecentContext.LastIntent)
	}
	if ctx.RecentContext.LastTopic != "AI" {
		t.Errorf("交互主题未记录: %q", ctx.RecentContext.LastTopic)
	}
}

// 测试防御性解析：非法意图、越界置信度、缺失置信度
func TestParseIntentResponseDefensive(t *testing.T) {
	intent := parseIntentResponse(`{"intent": "MAKE_COFFEE", "confidence": 0.9}`)
	if intent.Intent != models.IntentUnknown {
		t.Errorf("非法意图应归为UNKNOWN, 实际 %s", intent.Intent)
	}

	intent = parseIntentResponse(`{"intent": "NAVIGATE", "confidence": 1.7}`)
	if intent.Confidence != 1.0 {
		t.Errorf("越界置信度应截断到1.0, 实际 %v", intent.Confidence)
	}

	intent = parseIntentResponse(`{"intent": "NAVIGATE", "confidence": -0.2}`)
	if intent.Confidence != 0 {
		t.Errorf("负置信度应截断到0, 实际 %v", intent.Confidence)
	}

	intent = parseIntentResponse(`{"intent": "NAVIGATE"}`)
	if intent.Confidence != 0.5 {
		t.Errorf("缺失置信度应默认0.5, 实际 %v", intent.Confidence)
	}

	intent = parseIntentResponse("not json at all")
	if intent.Intent != models.IntentUnknown || intent.Confidence != 0 {
		t.Errorf("不可解析输出应返回UNKNOWN/0: %+v", intent)
	}
}

// 测试LLM失败时降级到关键词规则
func TestClassifyFallbackOnError(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("api down")}
	classifier := NewClassifier(client, newTestMemory(t))

	intent := classifier.Classify(context.Background(), "u1", "start aptitude test")
	if intent.Intent != models.IntentStartAptitudeTest {
		t.Errorf("降级分类错误: %s", intent.Intent)
	}
	if intent.Confidence != 0.7 {
		t.Errorf("降级置信度错误: %v", intent.Confidence)
	}
}

// 测试降级规则的匹配顺序与置信度
func TestFallbackClassifyRules(t *testing.T) {
	cases := []struct {
		input      string
		intent     models.IntentType
		confidence float64
	}{
		{"start the aptitude test", models.IntentStartAptitudeTest, 0.7},
		{"take an assessment please", models.IntentStartAptitudeTest, 0.7},
		{"what is machine learning", models.IntentExplainConcept, 0.6},
		{"explain cybersecurity to me", models.IntentExplainConcept, 0.6},
		{"which domain should i pick for my career", models.IntentGuideDomain, 0.65},
		{"i am so confused", models.IntentConfusionHelp, 0.7},
		{"i feel stuck", models.IntentConfusionHelp, 0.7},
		{"show me a roadmap", models.IntentShowRoadmap, 0.6},
		{"go to dashboard", models.IntentNavigate, 0.7},
		{"open my profile", models.IntentNavigate, 0.7},
		{"blorp", models.IntentUnknown, 0.3},
	}

	for _, tc := range cases {
		intent := fallbackClassify(tc.input)
		if intent.Intent != tc.intent {
			t.Errorf("输入 %q: intent = %s, 期望 %s", tc.input, intent.Intent, tc.intent)
		}
		if intent.Confidence != tc.confidence {
			t.Errorf("输入 %q: confidence = %v, 期望 %v", tc.input, intent.Confidence, tc.confidence)
		}
	}
}

// 测试降级规则的主题与页面提取
func TestFallbackClassifyExtraction(t *testing.T) {
	intent := fallbackClassify("what is data science")
	if intent.Topic != "data science" {
		t.Errorf("应提取主题: %q", intent.Topic)
	}

	intent = fallbackClassify("please go to the dashboard now")
	page, _ := intent.Parameters["page"].(string)
	if page != "dashboard" {
		t.Errorf("应提取页面参数: %q", page)
	}
}

// 测试规则顺序：讲解规则先于困惑规则命中
func TestFallbackClassifyOrder(t *testing.T) {
	// "don't know" 同时命中讲解与困惑规则，按顺序归为讲解
	intent := fallbackClassify("i don't know what recursion means")
	if intent.Intent != models.IntentExplainConcept {
		t.Errorf("规则顺序错误: %s", intent.Intent)
	}
}
