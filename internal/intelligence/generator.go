package intelligence

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/skillmate/service/internal/llm"
)

// ============================================================================
// 🎓 领域智能生成器 - 委托LLM生成方向预览/职业推理/学习路线图
// 生成失败时降级到手写兜底内容，调用方永远拿到可用结果
// ============================================================================

// Generator 领域智能生成器
type Generator struct {
	client llm.LLMClient
}

// NewGenerator 创建生成器
func NewGenerator(client llm.LLMClient) *Generator {
	return &Generator{client: client}
}

// GenerateDomainPreview 生成方向预览（"某个方向的一天"）
func (g *Generator) GenerateDomainPreview(ctx context.Context, input *DomainPreviewInput) *DomainPreview {
	userPrompt := fmt.Sprintf("Generate a day in the life preview for: %s", input.Domain)
	if input.Context != "" {
		userPrompt += ". Context: " + input.Context
	}

	resp, err := g.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: domainPreviewPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("[领域智能] 方向预览生成失败, 使用兜底内容: %v", err)
		return fallbackDomainPreview(input.Domain)
	}

	var preview DomainPreview
	if err := llm.ExtractJSON(resp.Content, &preview); err != nil {
		log.Printf("[领域智能] 方向预览解析失败, 使用兜底内容: %v", err)
		return fallbackDomainPreview(input.Domain)
	}

	// 缺失字段补默认值
	if preview.Title == "" {
		preview.Title = fmt.Sprintf("A Day in %s", input.Domain)
	}
	if preview.Description == "" {
		preview.Description = fmt.Sprintf("An overview of what it's like to work in %s", input.Domain)
	}
	if preview.DayInTheLife == "" {
		preview.DayInTheLife = "A typical day involves..."
	}
	if preview.TypicalTasks == nil {
		preview.TypicalTasks = []string{}
	}
	if preview.SkillsNeeded == nil {
		preview.SkillsNeeded = []string{}
	}
	if preview.WhyItMatters == "" {
		preview.WhyItMatters = "This domain is important because..."
	}

	return &preview
}

// GenerateCareerReasoning 生成方向契合度推理
func (g *Generator) GenerateCareerReasoning(ctx context.Context, input *CareerReasoningInput) *CareerReasoning {
	interests := "general CS interests"
	if len(input.StudentInterests) > 0 {
		interests = strings.Join(input.StudentInterests, ", ")
	}
	thinkingStyle := input.ThinkingStyle
	if thinkingStyle == "" {
		thinkingStyle = "analytical and creative"
	}

	userPrompt := fmt.Sprintf("Explain why %s fits a student with interests in: %s, and thinking style: %s",
		input.Domain, interests, thinkingStyle)
	if input.Context != "" {
		userPrompt += ". Context: " + input.Context
	}

	resp, err := g.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: careerReasoningPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   1200,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("[领域智能] 职业推理生成失败, 使用兜底内容: %v", err)
		return fallbackCareerReasoning(input.Domain)
	}

	var reasoning CareerReasoning
	if err := llm.ExtractJSON(resp.Content, &reasoning); err != nil {
		log.Printf("[领域智能] 职业推理解析失败, 使用兜底内容: %v", err)
		return fallbackCareerReasoning(input.Domain)
	}

	if reasoning.Domain == "" {
		reasoning.Domain = input.Domain
	}
	if reasoning.WhyItFits == "" {
		reasoning.WhyItFits = "This domain could be a great fit because..."
	}
	if reasoning.KeyStrengths == nil {
		reasoning.KeyStrengths = []string{}
	}
	if reasoning.LearningApproach == "" {
		reasoning.LearningApproach = "Start with basics and build gradually..."
	}
	if reasoning.CareerPath == "" {
		reasoning.CareerPath = "Career opportunities include..."
	}
	if reasoning.Encouragement == "" {
		reasoning.Encouragement = "You're on the right path!"
	}

	return &reasoning
}

// rawRoadmap 解析用中间结构，年度阶段用指针区分缺失
type rawRoadmap struct {
	Domain        string        `json:"domain"`
	Overview      string        `json:"overview"`
	Year1         *RoadmapPhase `json:"year1"`
	Year2         *RoadmapPhase `json:"year2"`
	Year3         *RoadmapPhase `json:"year3"`
	Year4         *RoadmapPhase `json:"year4"`
	NextSteps     []string      `json:"nextSteps"`
	Encouragement string        `json:"encouragement"`
}

// GenerateLearningRoadmap 生成四学年学习路线图
func (g *Generator) GenerateLearningRoadmap(ctx context.Context, input *LearningRoadmapInput) *LearningRoadmap {
	userPrompt := fmt.Sprintf("Generate a learning roadmap for: %s, starting from %s level",
		input.Domain, input.StudentLevel)
	if input.Goals != "" {
		userPrompt += ". Goals: " + input.Goals
	}

	resp, err := g.client.Complete(ctx, &llm.LLMRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: learningRoadmapPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   2000,
		Temperature: 0.6,
	})
	if err != nil {
		log.Printf("[领域智能] 路线图生成失败, 使用兜底内容: %v", err)
		return fallbackLearningRoadmap(input.Domain)
	}

	var raw rawRoadmap
	if err := llm.ExtractJSON(resp.Content, &raw); err != nil {
		log.Printf("[领域智能] 路线图解析失败, 使用兜底内容: %v", err)
		return fallbackLearningRoadmap(input.Domain)
	}

	roadmap := &LearningRoadmap{
		Domain:        raw.Domain,
		Overview:      raw.Overview,
		NextSteps:     raw.NextSteps,
		Encouragement: raw.Encouragement,
	}
	if roadmap.Domain == "" {
		roadmap.Domain = input.Domain
	}
	if roadmap.Overview == "" {
		roadmap.Overview = fmt.Sprintf("A learning journey for %s", input.Domain)
	}
	roadmap.Year1 = phaseOrDefault(raw.Year1, "Year 1: Foundation")
	roadmap.Year2 = phaseOrDefault(raw.Year2, "Year 2: Building Skills")
	roadmap.Year3 = phaseOrDefault(raw.Year3, "Year 3: Specialization")
	roadmap.Year4 = phaseOrDefault(raw.Year4, "Year 4: Advanced & Projects")
	if roadmap.NextSteps == nil {
		roadmap.NextSteps = []string{"Start with basics", "Practice regularly", "Build projects"}
	}
	if roadmap.Encouragement == "" {
		roadmap.Encouragement = "Take it one step at a time. You've got this!"
	}

	return roadmap
}

func phaseOrDefault(phase *RoadmapPhase, title string) RoadmapPhase {
	if phase != nil {
		return *phase
	}
	return defaultRoadmapPhase(title)
}
