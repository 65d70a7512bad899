package intelligence

import (
	"fmt"
	"strings"
)

// ============================================================================
// ✉️ 消息格式化 - 把结构化产物拼成前端可直接展示的友好文本
// ============================================================================

// FormatCareerReasoningMessage 格式化职业推理为友好消息
func FormatCareerReasoningMessage(reasoning *CareerReasoning) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Why %s Might Be Right For You**\n\n", reasoning.Domain)
	fmt.Fprintf(&b, "%s\n\n", reasoning.WhyItFits)

	if len(reasoning.KeyStrengths) > 0 {
		fmt.Fprintf(&b, "**Key Strengths:** %s\n\n", strings.Join(reasoning.KeyStrengths, ", "))
	}
	if reasoning.LearningApproach != "" {
		fmt.Fprintf(&b, "%s\n\n", reasoning.LearningApproach)
	}
	if reasoning.CareerPath != "" {
		fmt.Fprintf(&b, "%s\n\n", reasoning.CareerPath)
	}
	if reasoning.Encouragement != "" {
		fmt.Fprintf(&b, "💜 %s", reasoning.Encouragement)
	}

	return b.String()
}

// FormatRoadmapMessage 格式化路线图为友好消息
// 正文只展开第一学年，完整路线图由前端路线图页承载
func FormatRoadmapMessage(roadmap *LearningRoadmap) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Learning Roadmap for %s**\n\n", roadmap.Domain)
	fmt.Fprintf(&b, "%s\n\n", roadmap.Overview)

	if roadmap.Year1.Title != "" {
		fmt.Fprintf(&b, "**%s** (%s)\n", roadmap.Year1.Title, roadmap.Year1.Duration)
		fmt.Fprintf(&b, "Focus: %s\n", roadmap.Year1.Focus)
		if len(roadmap.Year1.Topics) > 0 {
			topics := roadmap.Year1.Topics
			if len(topics) > 3 {
				topics = topics[:3]
			}
			fmt.Fprintf(&b, "Topics: %s\n", strings.Join(topics, ", "))
		}
		b.WriteString("\n")
	}

	if len(roadmap.NextSteps) > 0 {
		b.WriteString("**Next Steps:**\n")
		steps := roadmap.NextSteps
		if len(steps) > 3 {
			steps = steps[:3]
		}
		for i, step := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}

	if roadmap.Encouragement != "" {
		fmt.Fprintf(&b, "💜 %s", roadmap.Encouragement)
	}

	return b.String()
}
