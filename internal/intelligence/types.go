package intelligence

// ============================================================================
// 🎓 领域智能模型 - 方向预览/职业推理/学习路线图
// ============================================================================

// StudentLevel 学生经验档位
type StudentLevel string

const (
	LevelBeginner   StudentLevel = "beginner"
	LevelFirstYear  StudentLevel = "first-year"
	LevelSecondYear StudentLevel = "second-year"
)

// DomainPreviewInput 方向预览输入
type DomainPreviewInput struct {
	Domain       string       `json:"domain"`
	StudentLevel StudentLevel `json:"student_level,omitempty"`
	Context      string       `json:"context,omitempty"`
}

// DomainPreview 方向预览，"某个方向的一天"
type DomainPreview struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DayInTheLife string   `json:"dayInTheLife"`
	TypicalTasks []string `json:"typicalTasks"`
	SkillsNeeded []string `json:"skillsNeeded"`
	WhyItMatters string   `json:"whyItMatters"`
}

// CareerReasoningInput 职业推理输入
type CareerReasoningInput struct {
	Domain           string   `json:"domain"`
	StudentInterests []string `json:"student_interests,omitempty"`
	ThinkingStyle    string   `json:"thinking_style,omitempty"`
	Context          string   `json:"context,omitempty"`
}

// CareerReasoning 方向契合度推理
type CareerReasoning struct {
	Domain           string   `json:"domain"`
	WhyItFits        string   `json:"whyItFits"`
	KeyStrengths     []string `json:"keyStrengths"`
	LearningApproach string   `json:"learningApproach"`
	CareerPath       string   `json:"careerPath"`
	Encouragement    string   `json:"encouragement"`
}

// LearningRoadmapInput 学习路线图输入
type LearningRoadmapInput struct {
	Domain           string       `json:"domain"`
	StudentLevel     StudentLevel `json:"student_level"`
	CurrentKnowledge []string     `json:"current_knowledge,omitempty"`
	Goals            string       `json:"goals,omitempty"`
}

// RoadmapPhase 路线图单个学年阶段
type RoadmapPhase struct {
	Title     string   `json:"title"`
	Duration  string   `json:"duration"`
	Focus     string   `json:"focus"`
	Topics    []string `json:"topics"`
	Projects  []string `json:"projects"`
	Resources []string `json:"resources"`
}

// LearningRoadmap 四学年学习路线图
type LearningRoadmap struct {
	Domain        string       `json:"domain"`
	Overview      string       `json:"overview"`
	Year1         RoadmapPhase `json:"year1"`
	Year2         RoadmapPhase `json:"year2"`
	Year3         RoadmapPhase `json:"year3"`
	Year4         RoadmapPhase `json:"year4"`
	NextSteps     []string     `json:"nextSteps"`
	Encouragement string       `json:"encouragement"`
}
