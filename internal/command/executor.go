package command

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/skillmate/service/internal/intelligence"
	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// ============================================================================
// ⚡ 动作执行器 - 把决策变成UI可渲染的效果
// 导航严格走白名单，生成类动作降级后仍返回友好消息
// ============================================================================

const explanationPrompt = `You are a helpful AI assistant for SkillMate, an educational platform for first-year CS engineering students who just completed 12th grade.

Your task is to explain a concept in a clear, beginner-friendly way that:
- Uses simple, everyday language (avoid technical jargon)
- Provides relatable examples that a first-year student can understand
- Is supportive and encouraging
- Builds confidence, not fear
- Is concise (2-3 short paragraphs maximum)

Remember: These students have NO prior coding knowledge. They are just starting their engineering journey.

Explain the following concept:`

const followupQuestionPrompt = `You are a helpful AI assistant for SkillMate, an educational platform for first-year CS engineering students.

Generate a short, friendly, clarifying question (1-2 sentences maximum) that helps understand what the student needs. Be warm, supportive, and non-intimidating.

Context: The student said something that needs clarification. Generate a question to help them better.`

const reassurancePrompt = `You are a supportive AI assistant for SkillMate, an educational platform for first-year CS engineering students who just completed 12th grade.

The student is feeling confused or uncertain. Your task is to provide calm, supportive guidance that:
- Reassures them that confusion is normal and okay
- Reduces anxiety and fear
- Is warm, empathetic, and encouraging
- Provides gentle guidance without pressure
- Uses simple, friendly language
- Is brief (2-3 sentences maximum)

Provide reassurance for:`

// safeRoutes 导航白名单，不在表内的路由一律拒绝
var safeRoutes = map[string]string{
	"/dashboard":        "/dashboard",
	"/profile":          "/profile",
	"/roadmaps":         "/roadmaps",
	"/roadmaps/":        "/roadmaps",
	"/chatbot":          "/chatbot",
	"/assessment/start": "/assessment/start",
	"/guidance":         "/guidance",
	"/academics":        "/academics",
	"/progress":         "/progress",
	"/achievements":     "/achievements",
	"/projects":         "/projects",
	"/skills":           "/skills",
}

// IsRouteSafe 路由是否在白名单内
func IsRouteSafe(route string) bool {
	_, ok := safeRoutes[route]
	return ok
}

// Executor 动作执行器
type Executor struct {
	client    llm.LLMClient
	memory    *store.MemoryStore
	generator *intelligence.Generator
}

// NewExecutor 创建执行器
func NewExecutor(client llm.LLMClient, memory *store.MemoryStore, generator *intelligence.Generator) *Executor {
	return &Executor{
		client:    client,
		memory:    memory,
		generator: generator,
	}
}

// Execute 执行动作决策，任何panic都兜底为no_action失败结果
func (e *Executor) Execute(ctx context.Context, userID string, decision *models.ActionDecision) (result *models.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[动作执行] panic恢复: %v", r)
			result = &models.ExecutionResult{
				Success: false,
				Type:    models.ResultNoAction,
				Error:   fmt.Sprintf("%v", r),
			}
		}
	}()

	switch decision.Action {
	case models.ActionRedirectToPage:
		return e.executeRedirect(decision)
	case models.ActionShowExplanation:
		return e.executeShowExplanation(ctx, userID, decision)
	case models.ActionAskFollowupQuestion:
		return e.executeAskFollowupQuestion(ctx, decision)
	case models.ActionProvideReassurance:
		return e.executeProvideReassurance(ctx, userID, decision)
	case models.ActionShowRoadmap:
		return e.executeShowRoadmap(ctx, userID, decision)
	case models.ActionStartAssessment:
		return e.executeStartAssessment(userID, decision)
	case models.ActionOpenChatbot:
		return e.executeOpenChatbot(decision)
	default:
		message := decision.MessageHint
		if message == "" {
			message = "No action needed"
		}
		return &models.ExecutionResult{
			Success: true,
			Type:    models.ResultNoAction,
			Message: message,
		}
	}
}

// executeRedirect 页面跳转，只放行白名单路由
func (e *Executor) executeRedirect(decision *models.ActionDecision) *models.ExecutionResult {
	route := decision.Payload.Route
	if route == "" {
		return &models.ExecutionResult{
			Success: false,
			Type:    models.ResultNavigation,
			Error:   "No route specified in action decision",
		}
	}

	safeRoute, ok := safeRoutes[route]
	if !ok {
		log.Printf("[动作执行] 拒绝跳转到非白名单路由: %s", route)
		return &models.ExecutionResult{
			Success: false,
			Type:    models.ResultNavigation,
			Error:   fmt.Sprintf("Route %s is not in the safe routes whitelist", route),
		}
	}

	message := decision.MessageHint
	if message == "" {
		message = fmt.Sprintf("Navigating to %s...", safeRoute)
	}
	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultNavigation,
		Route:   safeRoute,
		Message: message,
	}
}

// executeShowExplanation 生成概念讲解
// 方向相关主题走职业推理模块，其余走通用讲解，都基于记忆做个性化
func (e *Executor) executeShowExplanation(ctx context.Context, userID string, decision *models.ActionDecision) *models.ExecutionResult {
	topic := decision.Payload.Topic
	if topic == "" {
		topic = decision.Payload.Concept
	}
	if topic == "" {
		return &models.ExecutionResult{
			Success: false,
			Type:    models.ResultMessage,
			Error:   "No topic specified for explanation",
		}
	}

	memoryContext := e.memory.GetPersonalizationContext(userID)
	metadataDomain := metadataString(decision.Payload.Metadata, "domain")
	wasExplained := e.memory.WasConceptExplained(userID, topic, metadataDomain)

	// 按记忆个性化提示词
	prompt := explanationPrompt
	if wasExplained {
		prompt += fmt.Sprintf("\n\nIMPORTANT: You've explained %q to this student before. Reference that previous explanation naturally (e.g., \"As we discussed earlier...\") and build upon it rather than repeating the same information.", topic)
	}
	if last := memoryContext.RecentContext.LastTopic; last != "" && last != topic {
		prompt += fmt.Sprintf("\n\nThe student recently asked about %q. You can reference this connection if relevant.", last)
	}
	switch memoryContext.ExplanationStyle {
	case models.StyleVerySimple:
		prompt += "\n\nKeep the explanation very simple and brief - the student prefers minimal detail."
	case models.StyleSlightlyDetailed:
		prompt += "\n\nProvide slightly more detail - the student appreciates a bit more depth."
	}

	domain, hasDomain := models.DetectDomainFromTopic(topic)
	guidanceType := metadataString(decision.Payload.Metadata, "guidanceType")

	// 方向相关讲解走职业推理模块
	if hasDomain && (guidanceType == "domain_selection" || models.IsDomainTopic(topic)) {
		e.memory.RecordDiscussedDomain(userID, string(domain), "high", "")

		reasoning := e.generator.GenerateCareerReasoning(ctx, &intelligence.CareerReasoningInput{
			Domain:  string(domain),
			Context: metadataString(decision.Payload.Metadata, "context"),
		})

		message := intelligence.FormatCareerReasoningMessage(reasoning)
		if containsString(memoryContext.DiscussedDomains, string(domain)) {
			message = fmt.Sprintf("I remember you've shown interest in %s before! %s", domain, message)
		}

		e.memory.RecordExplainedConcept(userID, topic, string(domain), memoryContext.ExplanationStyle)
		// 方向讲解成功视为解决了一次方向选择困惑
		e.memory.ResolveConfusionSignal(userID, models.ConfusionDomainSelection, "")

		return &models.ExecutionResult{
			Success: true,
			Type:    models.ResultMessage,
			Message: message,
		}
	}

	// 通用讲解
	resp, err := e.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: prompt},
			{Role: llm.RoleUser, Content: "Please explain: " + topic},
		},
		MaxTokens:   800, // 限制长度保证讲解简明
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("[动作执行] 讲解生成失败: %v", err)
		return &models.ExecutionResult{
			Success: false,
			Type:    models.ResultMessage,
			Error:   "Failed to generate explanation. Please try again.",
			Message: fmt.Sprintf("I'd love to explain %s, but I'm having trouble right now. Could you try asking again?", topic),
		}
	}

	e.memory.RecordExplainedConcept(userID, topic, string(domain), memoryContext.ExplanationStyle)
	if hasDomain {
		e.memory.RecordDiscussedDomain(userID, string(domain), "", "")
	}

	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultMessage,
		Message: strings.TrimSpace(resp.Content),
	}
}

// executeAskFollowupQuestion 追问，决策自带问题时直接透传
func (e *Executor) executeAskFollowupQuestion(ctx context.Context, decision *models.ActionDecision) *models.ExecutionResult {
	if decision.Payload.Question != "" {
		return &models.ExecutionResult{
			Success:  true,
			Type:     models.ResultQuestion,
			Question: decision.Payload.Question,
			Options:  decision.Payload.Options,
		}
	}

	resp, err := e.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: followupQuestionPrompt},
			{Role: llm.RoleUser, Content: "Generate a friendly clarifying question to help the student."},
		},
		MaxTokens:   200, // 追问要短
		Temperature: 0.8, // 温度略高，语气更自然
	})
	if err != nil {
		log.Printf("[动作执行] 追问生成失败, 使用固定追问: %v", err)
		return &models.ExecutionResult{
			Success:  true,
			Type:     models.ResultQuestion,
			Question: "Could you tell me a bit more about what you need help with?",
			Options:  decision.Payload.Options,
		}
	}

	return &models.ExecutionResult{
		Success:  true,
		Type:     models.ResultQuestion,
		Question: strings.TrimSpace(resp.Content),
		Options:  decision.Payload.Options,
	}
}

// executeProvideReassurance 生成安抚消息，先记录困惑信号再生成
func (e *Executor) executeProvideReassurance(ctx context.Context, userID string, decision *models.ActionDecision) *models.ExecutionResult {
	reassuranceType := decision.Payload.ReassuranceType
	if reassuranceType == "" {
		reassuranceType = models.ReassuranceGeneral
	}
	context := metadataString(decision.Payload.Metadata, "context")

	// 生成前的记忆快照，用于判断是否反复困惑
	memoryContext := e.memory.GetPersonalizationContext(userID)
	unresolvedConfusion := memoryContext.ConfusionAreas

	e.memory.RecordConfusionSignal(userID, models.ConfusionType(reassuranceType), context)

	var promptContext string
	switch reassuranceType {
	case models.ReassuranceDomainSelection:
		promptContext = "The student is confused about which CS domain to choose."
	case models.ReassuranceLearningPath:
		promptContext = "The student is confused about how to learn or what to study."
	case models.ReassuranceCareer:
		promptContext = "The student is confused about their career path or future."
	default:
		promptContext = "The student is feeling confused or uncertain."
	}

	if len(unresolvedConfusion) > 0 {
		areas := make([]string, len(unresolvedConfusion))
		for i, a := range unresolvedConfusion {
			areas[i] = string(a)
		}
		promptContext += fmt.Sprintf(" This is not the first time the student has expressed confusion. They've been confused about: %s.",
			strings.Join(areas, ", "))
	}
	if len(memoryContext.DiscussedDomains) > 0 {
		promptContext += fmt.Sprintf(" The student has shown interest in: %s.",
			strings.Join(memoryContext.DiscussedDomains, ", "))
	}
	if context != "" {
		promptContext += " Additional context: " + context
	}

	resp, err := e.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: reassurancePrompt},
			{Role: llm.RoleUser, Content: promptContext},
		},
		MaxTokens:   300, // 安抚要短而聚焦
		Temperature: 0.8, // 温度略高，语气更温暖
	})
	if err != nil {
		log.Printf("[动作执行] 安抚生成失败, 使用固定安抚: %v", err)
		return &models.ExecutionResult{
			Success: true,
			Type:    models.ResultMessage,
			Message: "It's completely normal to feel confused, especially when you're just starting out. Everyone feels this way at the beginning. Take your time, and remember that you're not alone in this journey. I'm here to help guide you step by step. 💜",
		}
	}

	message := strings.TrimSpace(resp.Content)
	if len(unresolvedConfusion) > 1 {
		message = "I understand this can feel overwhelming. " + message
	}

	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultMessage,
		Message: message,
	}
}

// executeShowRoadmap 展示学习路线图
// 方向合法时生成定制路线图消息，否则跳转到路线图页
func (e *Executor) executeShowRoadmap(ctx context.Context, userID string, decision *models.ActionDecision) *models.ExecutionResult {
	domain := decision.Payload.Domain
	roadmapType := decision.Payload.RoadmapType
	if roadmapType == "" {
		roadmapType = models.RoadmapBeginner
	}

	memoryContext := e.memory.GetPersonalizationContext(userID)

	e.memory.RecordCompletedAction(userID, models.ActionRoadmapViewed, map[string]interface{}{
		"domain": domain,
		"type":   string(roadmapType),
	})

	if parsed, ok := models.ParseDomain(domain); ok {
		e.memory.RecordDiscussedDomain(userID, string(parsed), "high", "viewing roadmap")

		studentLevel := intelligence.LevelBeginner
		if roadmapType == models.RoadmapBeginner {
			studentLevel = intelligence.LevelFirstYear
		}

		roadmap := e.generator.GenerateLearningRoadmap(ctx, &intelligence.LearningRoadmapInput{
			Domain:       string(parsed),
			StudentLevel: studentLevel,
			Goals:        metadataString(decision.Payload.Metadata, "goals"),
		})

		message := intelligence.FormatRoadmapMessage(roadmap)
		if containsString(memoryContext.DiscussedDomains, string(parsed)) {
			message = fmt.Sprintf("Since you've shown interest in %s before, here's a roadmap tailored for you:\n\n%s", parsed, message)
		}

		return &models.ExecutionResult{
			Success: true,
			Type:    models.ResultMessage,
			Message: message,
		}
	}

	// 方向缺失或不合法，跳转到路线图页
	message := decision.MessageHint
	if domain != "" {
		message = fmt.Sprintf("Showing you a %s roadmap for %s...", roadmapType, domain)
	} else if message == "" {
		message = "Showing learning roadmaps..."
	}

	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultNavigation,
		Route:   "/roadmaps",
		Message: message,
	}
}

// executeStartAssessment 开始测评，重复触发不重复记录
func (e *Executor) executeStartAssessment(userID string, decision *models.ActionDecision) *models.ExecutionResult {
	assessmentType := decision.Payload.AssessmentType
	if assessmentType == "" {
		assessmentType = models.AssessmentAptitude
	}

	if !e.memory.WasActionCompleted(userID, models.ActionAptitudeTestStarted) {
		e.memory.RecordCompletedAction(userID, models.ActionAptitudeTestStarted, map[string]interface{}{
			"type": string(assessmentType),
		})
	}

	message := decision.MessageHint
	if message == "" {
		message = fmt.Sprintf("Starting your %s assessment...", assessmentType)
	}
	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultNavigation,
		Route:   "/assessment/start",
		Message: message,
	}
}

// executeOpenChatbot 打开对话机器人
func (e *Executor) executeOpenChatbot(decision *models.ActionDecision) *models.ExecutionResult {
	message := decision.MessageHint
	if message == "" {
		message = "Opening AI assistant..."
	}
	return &models.ExecutionResult{
		Success: true,
		Type:    models.ResultNavigation,
		Route:   "/chatbot",
		Message: message,
	}
}

func metadataString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
