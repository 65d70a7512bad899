package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skillmate/service/internal/intelligence"
	"github.com/skillmate/service/internal/models"
)

func newTestExecutor(t *testing.T, client *fakeLLMClient) *Executor {
	t.Helper()
	memory := newTestMemory(t)
	return NewExecutor(client, memory, intelligence.NewGenerator(client))
}

// 测试页面跳转白名单
func TestExecuteRedirect(t *testing.T) {
	executor := newTestExecutor(t, &fakeLLMClient{})

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionRedirectToPage,
		Payload: models.ActionPayload{Route: "/dashboard"},
	})
	if !result.Success || result.Type != models.ResultNavigation || result.Route != "/dashboard" {
		t.Errorf("白名单跳转失败: %+v", result)
	}

	// 非白名单路由拒绝
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionRedirectToPage,
		Payload: models.ActionPayload{Route: "/admin/secrets"},
	})
	if result.Success || result.Error == "" {
		t.Errorf("非白名单路由应拒绝: %+v", result)
	}
	if result.Route != "" {
		t.Errorf("拒绝时不应返回路由: %q", result.Route)
	}

	// 缺失路由
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionRedirectToPage,
	})
	if result.Success {
		t.Errorf("缺失路由应失败: %+v", result)
	}
}

// 测试通用概念讲解与记忆记录
func TestExecuteShowExplanationGeneric(t *testing.T) {
	client := &fakeLLMClient{content: "Recursion is when a function calls itself."}
	executor := newTestExecutor(t, client)

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionShowExplanation,
		Payload: models.ActionPayload{Topic: "recursion"},
	})
	if !result.Success || result.Type != models.ResultMessage {
		t.Fatalf("讲解失败: %+v", result)
	}
	if result.Message != "Recursion is when a function calls itself." {
		t.Errorf("message = %q", result.Message)
	}
	if client.lastReq.MaxTokens != 800 || client.lastReq.Temperature != 0.7 {
		t.Errorf("讲解请求参数错误: tokens=%d temp=%v",
			client.lastReq.MaxTokens, client.lastReq.Temperature)
	}

	// 概念已记录
	if !executor.memory.WasConceptExplained("u1", "recursion", "") {
		t.Error("讲解后概念应记录到记忆")
	}
}

// 测试重复讲解时提示词携带历史引用指令
func TestExecuteShowExplanationRepeat(t *testing.T) {
	client := &fakeLLMClient{content: "As we discussed earlier..."}
	executor := newTestExecutor(t, client)

	executor.memory.RecordExplainedConcept("u1", "recursion", "", "")
	executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionShowExplanation,
		Payload: models.ActionPayload{Topic: "recursion"},
	})

	systemPrompt := client.lastReq.Messages[0].Content
	if !strings.Contains(systemPrompt, "explained \"recursion\" to this student before") {
		t.Errorf("重复讲解提示词缺少历史引用指令:\n%s", systemPrompt)
	}
}

// 测试方向相关讲解走职业推理模块
func TestExecuteShowExplanationDomain(t *testing.T) {
	client := &fakeLLMClient{content: `{"domain": "AI & Machine Learning", "whyItFits": "You are curious.", "encouragement": "Go for it!"}`}
	executor := newTestExecutor(t, client)

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionShowExplanation,
		Payload: models.ActionPayload{
			Topic:    "Domain Guidance: AI & Machine Learning",
			Concept:  "AI & Machine Learning",
			Metadata: map[string]interface{}{"guidanceType": "domain_selection"},
		},
	})
	if !result.Success || result.Type != models.ResultMessage {
		t.Fatalf("方向讲解失败: %+v", result)
	}
	if !strings.Contains(result.Message, "**Why AI & Machine Learning Might Be Right For You**") {
		t.Errorf("方向讲解应走推理格式: %q", result.Message)
	}

	// 方向与概念都已记录
	ctx := executor.memory.GetPersonalizationContext("u1")
	if len(ctx.DiscussedDomains) != 1 || ctx.DiscussedDomains[0] != string(models.DomainAIMachineLearning) {
		t.Errorf("方向未记录: %v", ctx.DiscussedDomains)
	}

	// 二次请求携带兴趣前缀
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionShowExplanation,
		Payload: models.ActionPayload{
			Topic:    "Domain Guidance: AI & Machine Learning",
			Metadata: map[string]interface{}{"guidanceType": "domain_selection"},
		},
	})
	if !strings.HasPrefix(result.Message, "I remember you've shown interest in AI & Machine Learning before!") {
		t.Errorf("二次方向讲解应带兴趣前缀: %q", result.Message)
	}
}

// 测试裸方向主题（无guidanceType）也走职业推理模块
func TestExecuteShowExplanationDomainTopic(t *testing.T) {
	client := &fakeLLMClient{content: `{"domain": "AI & Machine Learning", "whyItFits": "You ask good questions."}`}
	executor := newTestExecutor(t, client)

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionShowExplanation,
		Payload: models.ActionPayload{Topic: "AI"},
	})
	if !result.Success || !strings.Contains(result.Message, "AI & Machine Learning") {
		t.Errorf("方向主题应返回包含方向名的推理消息: %+v", result)
	}
}

// 测试讲解失败的友好降级
func TestExecuteShowExplanationFailure(t *testing.T) {
	executor := newTestExecutor(t, &fakeLLMClient{err: errors.New("api down")})

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionShowExplanation,
		Payload: models.ActionPayload{Topic: "recursion"},
	})
	if result.Success {
		t.Errorf("LLM失败时讲解应失败: %+v", result)
	}
	if !strings.Contains(result.Message, "I'd love to explain recursion") {
		t.Errorf("失败时仍应有友好消息: %q", result.Message)
	}

	// 缺失主题
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionShowExplanation,
	})
	if result.Success || result.Error != "No topic specified for explanation" {
		t.Errorf("缺失主题应失败: %+v", result)
	}
}

// 测试追问透传与降级
func TestExecuteAskFollowupQuestion(t *testing.T) {
	client := &fakeLLMClient{content: "What topic interests you?"}
	executor := newTestExecutor(t, client)

	// 决策自带问题直接透传，不调用LLM
	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionAskFollowupQuestion,
		Payload: models.ActionPayload{
			Question: "Which domain?",
			Options:  []string{"A", "B"},
		},
	})
	if result.Question != "Which domain?" || len(result.Options) != 2 {
		t.Errorf("透传失败: %+v", result)
	}
	if client.calls != 0 {
		t.Errorf("自带问题不应调用LLM, 实际 %d 次", client.calls)
	}

	// 无问题时生成
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionAskFollowupQuestion,
	})
	if result.Question != "What topic interests you?" {
		t.Errorf("生成追问失败: %q", result.Question)
	}
	if client.lastReq.MaxTokens != 200 {
		t.Errorf("追问MaxTokens错误: %d", client.lastReq.MaxTokens)
	}

	// 生成失败用固定追问，仍算成功
	executor2 := newTestExecutor(t, &fakeLLMClient{err: errors.New("api down")})
	result = executor2.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionAskFollowupQuestion,
	})
	if !result.Success || result.Question != "Could you tell me a bit more about what you need help with?" {
		t.Errorf("降级追问错误: %+v", result)
	}
}

// 测试安抚：记录困惑信号、反复困惑加共情前缀、失败用固定安抚
func TestExecuteProvideReassurance(t *testing.T) {
	client := &fakeLLMClient{content: "It's okay to feel lost sometimes."}
	executor := newTestExecutor(t, client)

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionProvideReassurance,
		Payload: models.ActionPayload{ReassuranceType: models.ReassuranceDomainSelection},
	})
	if !result.Success || result.Type != models.ResultMessage {
		t.Fatalf("安抚失败: %+v", result)
	}
	if strings.HasPrefix(result.Message, "I understand this can feel overwhelming.") {
		t.Error("首次困惑不应加共情前缀")
	}
	if client.lastReq.MaxTokens != 300 || client.lastReq.Temperature != 0.8 {
		t.Errorf("安抚请求参数错误: tokens=%d temp=%v",
			client.lastReq.MaxTokens, client.lastReq.Temperature)
	}

	// 困惑信号已记录
	if got := executor.memory.GetUnresolvedConfusionSignals("u1"); len(got) != 1 {
		t.Fatalf("困惑信号未记录: %d", len(got))
	}

	// 第三次安抚时快照里已有2条未解决困惑，加共情前缀
	executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionProvideReassurance,
		Payload: models.ActionPayload{ReassuranceType: models.ReassuranceCareer},
	})
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionProvideReassurance,
		Payload: models.ActionPayload{ReassuranceType: models.ReassuranceGeneral},
	})
	if !strings.HasPrefix(result.Message, "I understand this can feel overwhelming.") {
		t.Errorf("反复困惑应加共情前缀: %q", result.Message)
	}

	// 生成失败用固定安抚，仍算成功
	executor2 := newTestExecutor(t, &fakeLLMClient{err: errors.New("api down")})
	result = executor2.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionProvideReassurance,
		Payload: models.ActionPayload{ReassuranceType: models.ReassuranceGeneral},
	})
	if !result.Success || !strings.Contains(result.Message, "💜") {
		t.Errorf("降级安抚错误: %+v", result)
	}
}

// 测试路线图：合法方向生成消息，非法方向跳转路线图页
func TestExecuteShowRoadmap(t *testing.T) {
	client := &fakeLLMClient{content: `{"domain": "Data Science", "overview": "A journey into data."}`}
	executor := newTestExecutor(t, client)

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionShowRoadmap,
		Payload: models.ActionPayload{
			Domain:      "Data Science",
			RoadmapType: models.RoadmapBeginner,
		},
	})
	if !result.Success || result.Type != models.ResultMessage {
		t.Fatalf("路线图生成失败: %+v", result)
	}
	if !strings.Contains(result.Message, "**Learning Roadmap for Data Science**") {
		t.Errorf("message = %q", result.Message)
	}

	// 浏览动作与方向讨论已记录
	if !executor.memory.WasActionCompleted("u1", models.ActionRoadmapViewed) {
		t.Error("roadmap_viewed未记录")
	}
	ctx := executor.memory.GetPersonalizationContext("u1")
	if len(ctx.DiscussedDomains) != 1 {
		t.Errorf("方向讨论未记录: %v", ctx.DiscussedDomains)
	}

	// 非法方向跳转路线图页
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:  models.ActionShowRoadmap,
		Payload: models.ActionPayload{Domain: "Astrology"},
	})
	if !result.Success || result.Type != models.ResultNavigation || result.Route != "/roadmaps" {
		t.Errorf("非法方向应跳转路线图页: %+v", result)
	}

	// 无方向也跳转
	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionShowRoadmap,
	})
	if result.Route != "/roadmaps" || result.Message != "Showing learning roadmaps..." {
		t.Errorf("无方向跳转错误: %+v", result)
	}
}

// 测试测评启动的幂等记录
func TestExecuteStartAssessment(t *testing.T) {
	executor := newTestExecutor(t, &fakeLLMClient{})

	for i := 0; i < 3; i++ {
		result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
			Action:  models.ActionStartAssessment,
			Payload: models.ActionPayload{AssessmentType: models.AssessmentAptitude},
		})
		if !result.Success || result.Route != "/assessment/start" {
			t.Fatalf("测评跳转失败: %+v", result)
		}
	}

	// 重复触发只记录一次
	summary := executor.memory.Summary("u1")
	if summary.CompletedActionsCount != 1 {
		t.Errorf("测评启动应只记录一次, 实际 %d", summary.CompletedActionsCount)
	}
}

// 测试打开机器人与NO_ACTION
func TestExecuteChatbotAndNoAction(t *testing.T) {
	executor := newTestExecutor(t, &fakeLLMClient{})

	result := executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action: models.ActionOpenChatbot,
	})
	if result.Route != "/chatbot" || result.Message != "Opening AI assistant..." {
		t.Errorf("打开机器人错误: %+v", result)
	}

	result = executor.Execute(context.Background(), "u1", &models.ActionDecision{
		Action:      models.ActionNoAction,
		MessageHint: "Low confidence",
	})
	if !result.Success || result.Type != models.ResultNoAction || result.Message != "Low confidence" {
		t.Errorf("NO_ACTION结果错误: %+v", result)
	}
}

// 测试执行过程panic兜底为失败结果
func TestExecutePanicRecovery(t *testing.T) {
	executor := newTestExecutor(t, &fakeLLMClient{})

	result := executor.Execute(context.Background(), "u1", nil)
	if result == nil {
		t.Fatal("panic后仍应返回结果")
	}
	if result.Success || result.Type != models.ResultNoAction || result.Error == "" {
		t.Errorf("panic应兜底为no_action失败: %+v", result)
	}
}
