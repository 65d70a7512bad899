package command

import (
	"strings"
	"testing"

	"github.com/skillmate/service/internal/models"
)

// 测试低置信度意图直接NO_ACTION
func TestRouteLowConfidence(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentExplainConcept,
		Topic:      "AI",
		Confidence: 0.2,
	})
	if decision.Action != models.ActionNoAction {
		t.Errorf("低置信度应NO_ACTION, 实际 %s", decision.Action)
	}
	if reason, _ := decision.Payload.Metadata["reason"].(string); reason == "" {
		t.Error("NO_ACTION决策应携带原因")
	}

	if d := router.Route("u1", nil); d.Action != models.ActionNoAction {
		t.Errorf("nil意图应NO_ACTION, 实际 %s", d.Action)
	}
}

// 测试测评意图路由
func TestRouteStartAptitudeTest(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentStartAptitudeTest,
		Confidence: 0.98,
	})
	if decision.Action != models.ActionStartAssessment {
		t.Fatalf("action = %s", decision.Action)
	}
	if decision.Payload.AssessmentType != models.AssessmentAptitude {
		t.Errorf("assessmentType = %s", decision.Payload.AssessmentType)
	}
	if decision.Confidence != 0.98 {
		t.Errorf("决策应继承意图置信度: %v", decision.Confidence)
	}
	if decision.RequiresConfirmation {
		t.Error("测评跳转不需要确认")
	}
	if decision.DecisionID == "" {
		t.Error("决策应有ID")
	}
}

// 测试讲解意图路由：有主题走讲解，无主题转追问
func TestRouteExplainConcept(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentExplainConcept,
		Topic:      "recursion",
		Confidence: 0.9,
	})
	if decision.Action != models.ActionShowExplanation {
		t.Fatalf("action = %s", decision.Action)
	}
	if decision.Payload.Topic != "recursion" || decision.Payload.Concept != "recursion" {
		t.Errorf("payload: topic=%q concept=%q", decision.Payload.Topic, decision.Payload.Concept)
	}

	// 无主题但上下文可提取
	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentExplainConcept,
		Context:    "student asks about machine learning basics",
		Confidence: 0.8,
	})
	if decision.Action != models.ActionShowExplanation {
		t.Fatalf("上下文提取后应走讲解, 实际 %s", decision.Action)
	}

	// 完全提取不到主题转追问
	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentExplainConcept,
		Confidence: 0.8,
	})
	if decision.Action != models.ActionAskFollowupQuestion {
		t.Fatalf("无主题应转追问, 实际 %s", decision.Action)
	}
	if decision.Payload.Question == "" || len(decision.Payload.Options) == 0 {
		t.Error("追问应带问题与选项")
	}
}

// 测试方向指导路由：指定方向走讲解，未指定走个性化追问
func TestRouteGuideDomain(t *testing.T) {
	memory := newTestMemory(t)
	router := NewRouter(memory)

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentGuideDomain,
		Domain:     "Data Science",
		Confidence: 0.9,
	})
	if decision.Action != models.ActionShowExplanation {
		t.Fatalf("action = %s", decision.Action)
	}
	if gt, _ := decision.Payload.Metadata["guidanceType"].(string); gt != "domain_selection" {
		t.Errorf("guidanceType = %q", gt)
	}

	// 无方向、无历史：通用追问
	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentGuideDomain,
		Confidence: 0.9,
	})
	if decision.Action != models.ActionAskFollowupQuestion {
		t.Fatalf("action = %s", decision.Action)
	}
	if decision.Payload.Question != "Which CS domains are you considering?" {
		t.Errorf("question = %q", decision.Payload.Question)
	}
	if len(decision.Payload.Options) != 6 {
		t.Errorf("通用选项应为6个, 实际 %d", len(decision.Payload.Options))
	}

	// 有历史讨论：讨论过的方向提前
	memory.RecordDiscussedDomain("u2", "Cybersecurity", "high", "")
	decision = router.Route("u2", &models.Intent{
		Intent:     models.IntentGuideDomain,
		Confidence: 0.9,
	})
	if !strings.Contains(decision.Payload.Question, "Cybersecurity") {
		t.Errorf("个性化追问应提到讨论过的方向: %q", decision.Payload.Question)
	}
	if decision.Payload.Options[0] != "Cybersecurity" {
		t.Errorf("讨论过的方向应排第一: %v", decision.Payload.Options)
	}
	if last := decision.Payload.Options[len(decision.Payload.Options)-1]; last != "Not sure yet" {
		t.Errorf("兜底选项应保持在末位: %q", last)
	}
	// 选项无重复
	seen := map[string]bool{}
	for _, opt := range decision.Payload.Options {
		if seen[opt] {
			t.Errorf("选项重复: %q", opt)
		}
		seen[opt] = true
	}

	// 两个讨论过的方向都提前且问题同时提到两者
	memory.RecordDiscussedDomain("u3", "Data Science", "high", "")
	memory.RecordDiscussedDomain("u3", "Cybersecurity", "", "")
	memory.RecordDiscussedDomain("u3", "Data Science", "high", "")
	decision = router.Route("u3", &models.Intent{
		Intent:     models.IntentGuideDomain,
		Confidence: 0.9,
	})
	if !strings.Contains(decision.Payload.Question, "Data Science") ||
		!strings.Contains(decision.Payload.Question, "Cybersecurity") {
		t.Errorf("追问应同时提到两个方向: %q", decision.Payload.Question)
	}
	if decision.Payload.Options[0] != "Data Science" || decision.Payload.Options[1] != "Cybersecurity" {
		t.Errorf("讨论过的方向应排前两位: %v", decision.Payload.Options)
	}
}

// 测试困惑意图的安抚类别推断
func TestRouteConfusionHelp(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	cases := []struct {
		context string
		want    models.ReassuranceType
	}{
		{"", models.ReassuranceGeneral},
		{"cannot decide which domain to choose", models.ReassuranceDomainSelection},
		{"not sure how to study or learn", models.ReassuranceLearningPath},
		{"worried about my job and future", models.ReassuranceCareer},
		{"just generally anxious", models.ReassuranceGeneral},
	}

	for _, tc := range cases {
		decision := router.Route("u1", &models.Intent{
			Intent:     models.IntentConfusionHelp,
			Context:    tc.context,
			Confidence: 0.85,
		})
		if decision.Action != models.ActionProvideReassurance {
			t.Fatalf("action = %s", decision.Action)
		}
		if decision.Payload.ReassuranceType != tc.want {
			t.Errorf("上下文 %q: reassuranceType = %s, 期望 %s",
				tc.context, decision.Payload.ReassuranceType, tc.want)
		}
	}
}

// 测试路线图意图路由
func TestRouteShowRoadmap(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentShowRoadmap,
		Domain:     "AI & Machine Learning",
		Confidence: 0.9,
	})
	if decision.Action != models.ActionShowRoadmap {
		t.Fatalf("action = %s", decision.Action)
	}
	if decision.Payload.RoadmapType != models.RoadmapBeginner {
		t.Errorf("roadmapType = %s", decision.Payload.RoadmapType)
	}

	// 方向从上下文提取
	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentShowRoadmap,
		Context:    "wants to learn devops",
		Confidence: 0.9,
	})
	if decision.Action != models.ActionShowRoadmap {
		t.Fatalf("上下文提取后应走路线图, 实际 %s", decision.Action)
	}
	if decision.Payload.Domain != string(models.DomainCloudDevOps) {
		t.Errorf("domain = %q", decision.Payload.Domain)
	}

	// 无方向转追问
	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentShowRoadmap,
		Confidence: 0.9,
	})
	if decision.Action != models.ActionAskFollowupQuestion {
		t.Fatalf("无方向应转追问, 实际 %s", decision.Action)
	}
	if len(decision.Payload.Options) != 5 {
		t.Errorf("方向选项应为5个, 实际 %d", len(decision.Payload.Options))
	}
}

// 测试导航意图路由
func TestRouteNavigate(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	cases := map[string]string{
		"dashboard": "/dashboard",
		"Profile":   "/profile",
		"roadmap":   "/roadmaps",
		"chat":      "/chatbot",
		"AI":        "/chatbot",
	}
	for page, route := range cases {
		decision := router.Route("u1", &models.Intent{
			Intent:     models.IntentNavigate,
			Parameters: map[string]interface{}{"page": page},
			Confidence: 0.9,
		})
		if decision.Action != models.ActionRedirectToPage {
			t.Fatalf("页面 %q: action = %s", page, decision.Action)
		}
		if decision.Payload.Route != route {
			t.Errorf("页面 %q: route = %q, 期望 %q", page, decision.Payload.Route, route)
		}
	}

	// 未知页面转追问
	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentNavigate,
		Parameters: map[string]interface{}{"page": "settings"},
		Confidence: 0.9,
	})
	if decision.Action != models.ActionAskFollowupQuestion {
		t.Errorf("未知页面应转追问, 实际 %s", decision.Action)
	}
}

// 测试一般提问与未知意图路由
func TestRouteGeneralAndUnknown(t *testing.T) {
	router := NewRouter(newTestMemory(t))

	decision := router.Route("u1", &models.Intent{
		Intent:     models.IntentGeneralQuestion,
		Topic:      "college life",
		Confidence: 0.8,
	})
	if decision.Action != models.ActionOpenChatbot {
		t.Errorf("一般提问应打开机器人, 实际 %s", decision.Action)
	}

	decision = router.Route("u1", &models.Intent{
		Intent:     models.IntentUnknown,
		Confidence: 0.5,
	})
	if decision.Action != models.ActionAskFollowupQuestion {
		t.Errorf("未知意图应转追问, 实际 %s", decision.Action)
	}
	if len(decision.Payload.Options) != 6 {
		t.Errorf("未知意图选项应为6个, 实际 %d", len(decision.Payload.Options))
	}
}
