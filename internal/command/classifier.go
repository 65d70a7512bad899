package command

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// ============================================================================
// 🔍 意图分类器 - 命令理解管线第一级
// 委托LLM做分类，LLM不可用时降级到关键词规则
// ============================================================================

const intentClassificationPrompt = `You are an intent classification system for SkillMate, an AI-guided platform for first-year CS engineering students.

Your ONLY job is to analyze user input and classify it into one of these intent categories:

1. EXPLAIN_CONCEPT - User wants to understand a concept (e.g., "I don't understand AI", "What is software development?")
2. GUIDE_DOMAIN - User wants help choosing a CS domain (e.g., "Which domain should I choose?", "Should I pick AI or Software?")
3. START_APTITUDE_TEST - User wants to start an assessment/test (e.g., "start test", "begin aptitude test", "take assessment")
4. CONFUSION_HELP - User expresses confusion or needs general help (e.g., "I am confused", "I need help", "I don't know what to do")
5. SHOW_ROADMAP - User wants to see learning path/roadmap (e.g., "how do I learn AI?", "what should I do next?", "show me a roadmap")
6. NAVIGATE - User wants to go to a specific page (e.g., "go to dashboard", "show my profile", "open roadmaps")
7. GENERAL_QUESTION - User asks a general question that doesn't fit other categories
8. UNKNOWN - Cannot determine intent

You MUST respond ONLY with valid JSON in this exact format:
{
  "intent": "INTENT_TYPE",
  "topic": "extracted topic or concept if relevant",
  "domain": "CS domain mentioned if relevant (Software, AI/ML, Data Science, Cybersecurity, Cloud)",
  "confidence": 0.0-1.0,
  "context": "brief context about what user is asking",
  "parameters": {}
}

Rules:
- Return ONLY the JSON object, no other text
- confidence should be between 0.0 and 1.0
- Extract topic/domain from user input when relevant
- Be precise and deterministic
- If unclear, use UNKNOWN intent with lower confidence

Examples:
User: "I don't understand AI"
Response: {"intent": "EXPLAIN_CONCEPT", "topic": "AI", "confidence": 0.95, "context": "User wants explanation of AI concept"}

User: "Which domain should I choose?"
Response: {"intent": "GUIDE_DOMAIN", "confidence": 0.9, "context": "User needs help choosing CS domain"}

User: "start aptitude test"
Response: {"intent": "START_APTITUDE_TEST", "confidence": 0.98, "context": "User wants to begin assessment"}

User: "I am confused"
Response: {"intent": "CONFUSION_HELP", "confidence": 0.85, "context": "User expresses confusion and needs help"}

User: "how do I learn software development?"
Response: {"intent": "SHOW_ROADMAP", "topic": "Software Development", "domain": "Software", "confidence": 0.92, "context": "User wants learning roadmap for software development"}

Now classify this user input:`

// Classifier 意图分类器
type Classifier struct {
	client llm.LLMClient
	memory *store.MemoryStore
}

// NewClassifier 创建分类器
func NewClassifier(client llm.LLMClient, memory *store.MemoryStore) *Classifier {
	return &Classifier{client: client, memory: memory}
}

// rawIntent LLM输出的解析中间结构
// confidence用指针区分缺失，缺失时默认0.5
type rawIntent struct {
	Intent     string                 `json:"intent"`
	Topic      string                 `json:"topic"`
	Domain     string                 `json:"domain"`
	Confidence *float64               `json:"confidence"`
	Context    string                 `json:"context"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Classify 把自然语言命令分类为结构化意图
// 空输入直接返回UNKNOWN，不触发LLM调用
func (c *Classifier) Classify(ctx context.Context, userID, userInput string) *models.Intent {
	input := strings.TrimSpace(userInput)
	if input == "" {
		return &models.Intent{
			Intent:     models.IntentUnknown,
			Confidence: 0,
			Context:    "Empty input",
		}
	}

	// 用记忆上下文增强提示词
	memoryContext := c.memory.GetPersonalizationContext(userID)
	prompt := intentClassificationPrompt

	if memoryContext.RecentContext.LastTopic != "" {
		prompt += fmt.Sprintf("\n\nContext: The student recently asked about %q.",
			memoryContext.RecentContext.LastTopic)
	}
	if len(memoryContext.DiscussedDomains) > 0 {
		prompt += fmt.Sprintf("\n\nThe student has shown interest in: %s.",
			strings.Join(memoryContext.DiscussedDomains, ", "))
	}
	if len(memoryContext.ConfusionAreas) > 0 {
		areas := make([]string, len(memoryContext.ConfusionAreas))
		for i, a := range memoryContext.ConfusionAreas {
			areas[i] = string(a)
		}
		prompt += fmt.Sprintf("\n\nThe student has expressed confusion about: %s.",
			strings.Join(areas, ", "))
	}

	resp, err := c.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: prompt},
			{Role: llm.RoleUser, Content: input},
		},
		MaxTokens:   500, // 限制token数，分类响应要快且聚焦
		Temperature: 0.1, // 低温度保证分类稳定
	})
	if err != nil {
		log.Printf("[意图分类] LLM调用失败, 降级到关键词规则: %v", err)
		return fallbackClassify(input)
	}

	intent := parseIntentResponse(resp.Content)

	// 记录交互
	topic := intent.Topic
	if topic == "" {
		topic = intent.Domain
	}
	c.memory.RecordInteraction(userID, string(intent.Intent), topic)

	log.Printf("[意图分类] input=%q intent=%s confidence=%.2f",
		input, intent.Intent, intent.Confidence)
	return intent
}

// parseIntentResponse 防御性解析LLM分类输出
// 非法意图归为UNKNOWN，置信度缺失取0.5、越界截断到[0,1]
func parseIntentResponse(content string) *models.Intent {
	var raw rawIntent
	if err := llm.ExtractJSON(content, &raw); err != nil {
		log.Printf("[意图分类] 解析分类输出失败: %v", err)
		return &models.Intent{
			Intent:     models.IntentUnknown,
			Confidence: 0,
			Context:    "Failed to parse AI response",
		}
	}

	intentType, _ := models.ParseIntentType(raw.Intent)

	confidence := 0.5
	if raw.Confidence != nil {
		confidence = models.ClampConfidence(*raw.Confidence)
	}

	parameters := raw.Parameters
	if parameters == nil {
		parameters = map[string]interface{}{}
	}

	return &models.Intent{
		Intent:     intentType,
		Topic:      raw.Topic,
		Domain:     raw.Domain,
		Confidence: confidence,
		Context:    raw.Context,
		Parameters: parameters,
	}
}
