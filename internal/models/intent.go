package models

// ============================================================================
// 🔍 意图模型 - 命令理解管线的第一级产物
// ============================================================================

// IntentType 用户意图类别
type IntentType string

const (
	IntentExplainConcept    IntentType = "EXPLAIN_CONCEPT"     // 想理解某个概念
	IntentGuideDomain       IntentType = "GUIDE_DOMAIN"        // 需要方向选择指导
	IntentStartAptitudeTest IntentType = "START_APTITUDE_TEST" // 想开始能力测评
	IntentConfusionHelp     IntentType = "CONFUSION_HELP"      // 表达困惑需要安抚
	IntentShowRoadmap       IntentType = "SHOW_ROADMAP"        // 想看学习路线图
	IntentNavigate          IntentType = "NAVIGATE"            // 想跳转到某个页面
	IntentGeneralQuestion   IntentType = "GENERAL_QUESTION"    // 一般性提问
	IntentUnknown           IntentType = "UNKNOWN"             // 无法判断
)

// AllIntentTypes 所有合法的意图类别
func AllIntentTypes() []IntentType {
	return []IntentType{
		IntentExplainConcept,
		IntentGuideDomain,
		IntentStartAptitudeTest,
		IntentConfusionHelp,
		IntentShowRoadmap,
		IntentNavigate,
		IntentGeneralQuestion,
		IntentUnknown,
	}
}

// ParseIntentType 校验意图类别，未识别的值归为 UNKNOWN
func ParseIntentType(s string) (IntentType, bool) {
	for _, t := range AllIntentTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return IntentUnknown, false
}

// Description 意图类别的可读描述
func (t IntentType) Description() string {
	switch t {
	case IntentExplainConcept:
		return "Explain a concept"
	case IntentGuideDomain:
		return "Guide domain selection"
	case IntentStartAptitudeTest:
		return "Start aptitude test"
	case IntentConfusionHelp:
		return "Help with confusion"
	case IntentShowRoadmap:
		return "Show learning roadmap"
	case IntentNavigate:
		return "Navigate to page"
	case IntentGeneralQuestion:
		return "General question"
	default:
		return "Unknown intent"
	}
}

// Intent 一次用户输入的结构化意图
// 由分类器创建一次，不可变，被路由器消费一次
type Intent struct {
	Intent     IntentType             `json:"intent"`
	Topic      string                 `json:"topic,omitempty"`
	Domain     string                 `json:"domain,omitempty"`
	Confidence float64                `json:"confidence"`
	Context    string                 `json:"context,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// ClampConfidence 把置信度限制在 [0,1] 区间
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
