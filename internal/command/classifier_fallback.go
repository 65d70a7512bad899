package command

import (
	"regexp"
	"strings"

	"github.com/skillmate/service/internal/models"
)

// ============================================================================
// 🧰 降级分类规则 - LLM不可用时的关键词匹配
// 规则按固定顺序求值，先命中先返回
// ============================================================================

var (
	reStartTest    = regexp.MustCompile(`\b(start|begin|take|do|run)\b.*\b(test|assessment|aptitude|quiz)\b`)
	reExplain      = regexp.MustCompile(`\b(what|explain|tell me about|understand|don't understand|don't know)\b`)
	reExplainTopic = regexp.MustCompile(`\b(ai|machine learning|software|data science|cybersecurity|cloud|devops)\b`)
	reGuideDomain  = regexp.MustCompile(`\b(which|choose|pick|select|should i)\b.*\b(domain|path|career|field)\b`)
	reConfusion    = regexp.MustCompile(`\b(confused|help|lost|don't know|unsure|stuck)\b`)
	reRoadmap      = regexp.MustCompile(`\b(how|learn|roadmap|path|steps|what to do|next)\b`)
	reNavigate     = regexp.MustCompile(`\b(go to|show|open|navigate|visit)\b.*\b(dashboard|profile|roadmap|chatbot)\b`)
	reNavigatePage = regexp.MustCompile(`\b(dashboard|profile|roadmap|chatbot)\b`)
)

// fallbackClassify 关键词降级分类
func fallbackClassify(userInput string) *models.Intent {
	lower := strings.ToLower(userInput)

	if reStartTest.MatchString(lower) {
		return &models.Intent{
			Intent:     models.IntentStartAptitudeTest,
			Confidence: 0.7,
			Context:    "Keyword match: test/assessment",
		}
	}

	if reExplain.MatchString(lower) {
		return &models.Intent{
			Intent:     models.IntentExplainConcept,
			Topic:      reExplainTopic.FindString(lower),
			Confidence: 0.6,
			Context:    "Keyword match: explanation request",
		}
	}

	if reGuideDomain.MatchString(lower) {
		return &models.Intent{
			Intent:     models.IntentGuideDomain,
			Confidence: 0.65,
			Context:    "Keyword match: domain selection",
		}
	}

	if reConfusion.MatchString(lower) {
		return &models.Intent{
			Intent:     models.IntentConfusionHelp,
			Confidence: 0.7,
			Context:    "Keyword match: confusion/help",
		}
	}

	if reRoadmap.MatchString(lower) {
		return &models.Intent{
			Intent:     models.IntentShowRoadmap,
			Confidence: 0.6,
			Context:    "Keyword match: learning path",
		}
	}

	if reNavigate.MatchString(lower) {
		params := map[string]interface{}{}
		if page := reNavigatePage.FindString(lower); page != "" {
			params["page"] = page
		}
		return &models.Intent{
			Intent:     models.IntentNavigate,
			Confidence: 0.7,
			Parameters: params,
		}
	}

	return &models.Intent{
		Intent:     models.IntentUnknown,
		Confidence: 0.3,
		Context:    "Fallback classification: no clear intent match",
	}
}
