package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// ============================================================================
// 🧭 动作路由器 - 确定性规则层，把意图映射为结构化动作决策
// 不调用LLM，只读记忆做个性化
// ============================================================================

// 置信度低于该阈值时直接NO_ACTION
const minRoutableConfidence = 0.3

// Router 动作路由器
type Router struct {
	memory *store.MemoryStore
}

// NewRouter 创建路由器
func NewRouter(memory *store.MemoryStore) *Router {
	return &Router{memory: memory}
}

// Route 把结构化意图映射为动作决策
func (r *Router) Route(userID string, intent *models.Intent) *models.ActionDecision {
	if intent == nil || intent.Confidence < minRoutableConfidence {
		return noActionDecision("Low confidence in intent classification")
	}

	switch intent.Intent {
	case models.IntentStartAptitudeTest:
		return r.routeStartAptitudeTest(intent)
	case models.IntentExplainConcept:
		return r.routeExplainConcept(intent)
	case models.IntentGuideDomain:
		return r.routeGuideDomain(userID, intent)
	case models.IntentConfusionHelp:
		return r.routeConfusionHelp(intent)
	case models.IntentShowRoadmap:
		return r.routeShowRoadmap(intent)
	case models.IntentNavigate:
		return r.routeNavigate(intent)
	case models.IntentGeneralQuestion:
		return r.routeGeneralQuestion(intent)
	default:
		return r.routeUnknown(intent)
	}
}

func (r *Router) routeStartAptitudeTest(intent *models.Intent) *models.ActionDecision {
	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionStartAssessment,
		Payload: models.ActionPayload{
			AssessmentType: models.AssessmentAptitude,
			Metadata: map[string]interface{}{
				"source": "command_bar",
				"intent": string(intent.Intent),
			},
		},
		MessageHint:          "Starting your aptitude and interest assessment...",
		Confidence:           intent.Confidence,
		RequiresConfirmation: false,
	}
}

func (r *Router) routeExplainConcept(intent *models.Intent) *models.ActionDecision {
	topic := intent.Topic
	if topic == "" {
		topic = extractTopicFromContext(intent.Context)
	}

	if topic == "" {
		// 提取不到主题，转为追问
		return &models.ActionDecision{
			DecisionID: uuid.NewString(),
			Action:     models.ActionAskFollowupQuestion,
			Payload: models.ActionPayload{
				Question: "What would you like me to explain?",
				Options: []string{
					"AI and Machine Learning",
					"Software Development",
					"Data Science",
					"Cybersecurity",
					"Cloud Computing",
					"Something else",
				},
			},
			MessageHint: "I'd be happy to explain! What topic are you curious about?",
			Confidence:  intent.Confidence,
		}
	}

	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionShowExplanation,
		Payload: models.ActionPayload{
			Topic:   topic,
			Concept: topic,
			Metadata: map[string]interface{}{
				"source": "command_bar",
				"intent": string(intent.Intent),
				"domain": intent.Domain,
			},
		},
		MessageHint: fmt.Sprintf("Let me explain %s in a beginner-friendly way...", topic),
		Confidence:  intent.Confidence,
	}
}

// routeGuideDomain 方向指导，用最常讨论的方向个性化追问选项
func (r *Router) routeGuideDomain(userID string, intent *models.Intent) *models.ActionDecision {
	if intent.Domain != "" {
		return &models.ActionDecision{
			DecisionID: uuid.NewString(),
			Action:     models.ActionShowExplanation,
			Payload: models.ActionPayload{
				Topic:   fmt.Sprintf("Domain Guidance: %s", intent.Domain),
				Concept: intent.Domain,
				Metadata: map[string]interface{}{
					"source":       "command_bar",
					"intent":       string(intent.Intent),
					"guidanceType": "domain_selection",
					"context":      intent.Context,
				},
			},
			MessageHint: fmt.Sprintf("Let me help you understand %s and whether it's right for you...", intent.Domain),
			Confidence:  intent.Confidence,
		}
	}

	question := "Which CS domains are you considering?"
	options := []string{
		"Software Development",
		"AI & Machine Learning",
		"Data Science",
		"Cybersecurity",
		"Cloud & DevOps",
		"Not sure yet",
	}

	// 有历史讨论时把讨论过的方向提到前面
	mostDiscussed := r.memory.GetMostDiscussedDomains(userID, 2)
	if len(mostDiscussed) > 0 {
		question = fmt.Sprintf("I've noticed you've shown interest in %s. Which domain would you like to explore more?",
			strings.Join(mostDiscussed, " and "))

		discussedSet := make(map[string]bool, len(mostDiscussed))
		for _, d := range mostDiscussed {
			discussedSet[d] = true
		}
		reordered := append([]string{}, mostDiscussed...)
		for _, opt := range options {
			if !discussedSet[opt] && opt != "Not sure yet" {
				reordered = append(reordered, opt)
			}
		}
		options = append(reordered, "Not sure yet")
	}

	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionAskFollowupQuestion,
		Payload: models.ActionPayload{
			Question: question,
			Options:  options,
		},
		MessageHint: "I can help you choose! What areas interest you most?",
		Confidence:  intent.Confidence,
	}
}

func (r *Router) routeConfusionHelp(intent *models.Intent) *models.ActionDecision {
	reassuranceType := models.ReassuranceGeneral

	if intent.Context != "" {
		context := strings.ToLower(intent.Context)
		switch {
		case strings.Contains(context, "domain") || strings.Contains(context, "choose") || strings.Contains(context, "path"):
			reassuranceType = models.ReassuranceDomainSelection
		case strings.Contains(context, "learn") || strings.Contains(context, "study") || strings.Contains(context, "course"):
			reassuranceType = models.ReassuranceLearningPath
		case strings.Contains(context, "career") || strings.Contains(context, "job") || strings.Contains(context, "future"):
			reassuranceType = models.ReassuranceCareer
		}
	}

	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionProvideReassurance,
		Payload: models.ActionPayload{
			ReassuranceType: reassuranceType,
			Metadata: map[string]interface{}{
				"source":  "command_bar",
				"intent":  string(intent.Intent),
				"context": intent.Context,
			},
		},
		MessageHint: "It's completely normal to feel confused. Let me help you find clarity...",
		Confidence:  intent.Confidence,
	}
}

func (r *Router) routeShowRoadmap(intent *models.Intent) *models.ActionDecision {
	domain := intent.Domain
	if domain == "" {
		domain = extractDomainFromContext(intent.Context)
	}

	if domain != "" {
		return &models.ActionDecision{
			DecisionID: uuid.NewString(),
			Action:     models.ActionShowRoadmap,
			Payload: models.ActionPayload{
				Domain:      domain,
				RoadmapType: models.RoadmapBeginner,
				Metadata: map[string]interface{}{
					"source": "command_bar",
					"intent": string(intent.Intent),
					"topic":  intent.Topic,
				},
			},
			MessageHint: fmt.Sprintf("Here's a beginner-friendly roadmap for %s...", domain),
			Confidence:  intent.Confidence,
		}
	}

	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionAskFollowupQuestion,
		Payload: models.ActionPayload{
			Question: "Which domain would you like a roadmap for?",
			Options: []string{
				"Software Development",
				"AI & Machine Learning",
				"Data Science",
				"Cybersecurity",
				"Cloud & DevOps",
			},
		},
		MessageHint: "I can show you a learning path! Which domain interests you?",
		Confidence:  intent.Confidence,
	}
}

// 页面名到路由的映射表
var pageRouteMap = map[string]string{
	"dashboard": "/dashboard",
	"profile":   "/profile",
	"roadmap":   "/roadmaps",
	"roadmaps":  "/roadmaps",
	"chatbot":   "/chatbot",
	"chat":      "/chatbot",
	"ai":        "/chatbot",
}

func (r *Router) routeNavigate(intent *models.Intent) *models.ActionDecision {
	page := ""
	if intent.Parameters != nil {
		if p, ok := intent.Parameters["page"].(string); ok {
			page = p
		}
	}

	if route, ok := pageRouteMap[strings.ToLower(page)]; ok && page != "" {
		return &models.ActionDecision{
			DecisionID: uuid.NewString(),
			Action:     models.ActionRedirectToPage,
			Payload: models.ActionPayload{
				Route: route,
				Metadata: map[string]interface{}{
					"source": "command_bar",
					"intent": string(intent.Intent),
				},
			},
			MessageHint:          fmt.Sprintf("Taking you to %s...", page),
			Confidence:           intent.Confidence,
			RequiresConfirmation: false,
		}
	}

	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionAskFollowupQuestion,
		Payload: models.ActionPayload{
			Question: "Where would you like to go?",
			Options: []string{
				"Dashboard",
				"Profile",
				"Roadmaps",
				"AI Chatbot",
			},
		},
		MessageHint: "I can help you navigate! Where would you like to go?",
		Confidence:  intent.Confidence,
	}
}

func (r *Router) routeGeneralQuestion(intent *models.Intent) *models.ActionDecision {
	// 一般性提问交给对话机器人处理
	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionOpenChatbot,
		Payload: models.ActionPayload{
			Metadata: map[string]interface{}{
				"source":  "command_bar",
				"intent":  string(intent.Intent),
				"topic":   intent.Topic,
				"context": intent.Context,
			},
		},
		MessageHint: "Let me help you with that question...",
		Confidence:  intent.Confidence,
	}
}

func (r *Router) routeUnknown(intent *models.Intent) *models.ActionDecision {
	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionAskFollowupQuestion,
		Payload: models.ActionPayload{
			Question: "I'm not sure what you need. Can you help me understand?",
			Options: []string{
				"I need help choosing a domain",
				"I want to understand a concept",
				"I want to start an assessment",
				"I want to see a learning roadmap",
				"I'm feeling confused",
				"Something else",
			},
		},
		MessageHint: "I want to help! Could you tell me more about what you need?",
		Confidence:  intent.Confidence,
	}
}

func noActionDecision(reason string) *models.ActionDecision {
	return &models.ActionDecision{
		DecisionID: uuid.NewString(),
		Action:     models.ActionNoAction,
		Payload: models.ActionPayload{
			Metadata: map[string]interface{}{
				"reason": reason,
			},
		},
		Confidence:  0,
		MessageHint: reason,
	}
}

// extractTopicFromContext 从上下文文本中提取主题
var contextTopics = []string{
	"AI", "Machine Learning", "Software Development", "Data Science",
	"Cybersecurity", "Cloud", "DevOps",
}

func extractTopicFromContext(context string) string {
	if context == "" {
		return ""
	}
	lower := strings.ToLower(context)
	for _, topic := range contextTopics {
		if strings.Contains(lower, strings.ToLower(topic)) {
			return topic
		}
	}
	return ""
}

// extractDomainFromContext 从上下文文本中提取方向名
func extractDomainFromContext(context string) string {
	if context == "" {
		return ""
	}
	if domain, ok := models.DetectDomainFromTopic(context); ok {
		return string(domain)
	}
	return ""
}
