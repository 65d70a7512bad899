package models

// ============================================================================
// 🧠 动作决策模型 - 路由器的确定性产物
// ============================================================================

// ActionType 系统可执行的动作类别
type ActionType string

const (
	ActionShowExplanation     ActionType = "SHOW_EXPLANATION"
	ActionRedirectToPage      ActionType = "REDIRECT_TO_PAGE"
	ActionAskFollowupQuestion ActionType = "ASK_FOLLOWUP_QUESTION"
	ActionProvideReassurance  ActionType = "PROVIDE_REASSURANCE"
	ActionShowRoadmap         ActionType = "SHOW_ROADMAP"
	ActionStartAssessment     ActionType = "START_ASSESSMENT"
	ActionOpenChatbot         ActionType = "OPEN_CHATBOT"
	ActionNoAction            ActionType = "NO_ACTION"
)

// Description 动作类别的可读描述
func (a ActionType) Description() string {
	switch a {
	case ActionShowExplanation:
		return "Show explanation"
	case ActionRedirectToPage:
		return "Redirect to page"
	case ActionAskFollowupQuestion:
		return "Ask follow-up question"
	case ActionProvideReassurance:
		return "Provide reassurance"
	case ActionShowRoadmap:
		return "Show roadmap"
	case ActionStartAssessment:
		return "Start assessment"
	case ActionOpenChatbot:
		return "Open chatbot"
	case ActionNoAction:
		return "No action"
	default:
		return "Unknown action"
	}
}

// ReassuranceType 安抚类别
type ReassuranceType string

const (
	ReassuranceGeneral         ReassuranceType = "general"
	ReassuranceDomainSelection ReassuranceType = "domain_selection"
	ReassuranceLearningPath    ReassuranceType = "learning_path"
	ReassuranceCareer          ReassuranceType = "career"
)

// RoadmapType 路线图难度档位
type RoadmapType string

const (
	RoadmapBeginner     RoadmapType = "beginner"
	RoadmapIntermediate RoadmapType = "intermediate"
	RoadmapAdvanced     RoadmapType = "advanced"
)

// AssessmentType 测评类别
type AssessmentType string

const (
	AssessmentAptitude AssessmentType = "aptitude"
	AssessmentInterest AssessmentType = "interest"
	AssessmentCombined AssessmentType = "combined"
)

// ActionPayload 动作负载，按动作类别填充对应字段
type ActionPayload struct {
	// REDIRECT_TO_PAGE
	Route string `json:"route,omitempty"`

	// SHOW_EXPLANATION
	Topic   string `json:"topic,omitempty"`
	Concept string `json:"concept,omitempty"`

	// ASK_FOLLOWUP_QUESTION
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`

	// SHOW_ROADMAP
	Domain      string      `json:"domain,omitempty"`
	RoadmapType RoadmapType `json:"roadmap_type,omitempty"`

	// START_ASSESSMENT
	AssessmentType AssessmentType `json:"assessment_type,omitempty"`

	// PROVIDE_REASSURANCE
	ReassuranceType ReassuranceType `json:"reassurance_type,omitempty"`

	// 通用元数据
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ActionDecision 路由器产出的结构化决策
// 由路由器创建一次，不可变，被执行器消费一次
type ActionDecision struct {
	DecisionID           string        `json:"decision_id"`
	Action               ActionType    `json:"action"`
	Payload              ActionPayload `json:"payload"`
	MessageHint          string        `json:"message_hint,omitempty"`
	Confidence           float64       `json:"confidence"`
	RequiresConfirmation bool          `json:"requires_confirmation"`
}

// ============================================================================
// ⚡ 执行结果模型 - UI需要渲染的最终效果
// ============================================================================

// ResultType 执行结果类别
type ResultType string

const (
	ResultNavigation ResultType = "navigation"
	ResultMessage    ResultType = "message"
	ResultQuestion   ResultType = "question"
	ResultNoAction   ResultType = "no_action"
)

// ExecutionResult 执行动作的结果
// 不变式：type==navigation 时 route 必须非空且在白名单内；
// type==question 时 question 必须非空
type ExecutionResult struct {
	Success  bool       `json:"success"`
	Type     ResultType `json:"type"`
	Message  string     `json:"message,omitempty"`
	Route    string     `json:"route,omitempty"`
	Question string     `json:"question,omitempty"`
	Options  []string   `json:"options,omitempty"`
	Error    string     `json:"error,omitempty"`
}
