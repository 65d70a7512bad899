package models

import (
	"sort"
	"time"
)

// ============================================================================
// 💾 学生记忆模型 - 按用户持久化的个性化上下文
// ============================================================================

// ExplanationStyle 讲解风格偏好
type ExplanationStyle string

const (
	StyleVerySimple       ExplanationStyle = "very_simple"
	StyleSlightlyDetailed ExplanationStyle = "slightly_detailed"
	StyleBalanced         ExplanationStyle = "balanced"
)

// IsValidExplanationStyle 校验讲解风格取值
func IsValidExplanationStyle(s string) bool {
	switch ExplanationStyle(s) {
	case StyleVerySimple, StyleSlightlyDetailed, StyleBalanced:
		return true
	}
	return false
}

// ConfusionType 困惑信号类别
type ConfusionType string

const (
	ConfusionDomainSelection ConfusionType = "domain_selection"
	ConfusionLearningPath    ConfusionType = "learning_path"
	ConfusionCareer          ConfusionType = "career"
	ConfusionConcept         ConfusionType = "concept"
	ConfusionGeneral         ConfusionType = "general"
)

// CompletedActionType 已完成动作类别
type CompletedActionType string

const (
	ActionAptitudeTestStarted    CompletedActionType = "aptitude_test_started"
	ActionAptitudeTestCompleted  CompletedActionType = "aptitude_test_completed"
	ActionDomainPreviewViewed    CompletedActionType = "domain_preview_viewed"
	ActionRoadmapViewed          CompletedActionType = "roadmap_viewed"
	ActionExplanationReceived    CompletedActionType = "explanation_received"
	ActionCareerGuidanceReceived CompletedActionType = "career_guidance_received"
)

// 各记忆列表的容量上限，每次写入后按时间裁剪
const (
	MaxExplainedConcepts  = 20
	MaxDiscussedDomains   = 10
	MaxConfusionSignals   = 15
	MaxCompletedActions   = 20
	MaxRecentInteractions = 30
)

// ExplainedConcept 已讲解过的概念
type ExplainedConcept struct {
	Concept          string           `json:"concept"`
	Domain           string           `json:"domain,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
	ExplanationStyle ExplanationStyle `json:"explanation_style,omitempty"`
}

// DiscussedDomain 讨论过的方向，按方向名去重（大小写不敏感）
type DiscussedDomain struct {
	Domain        string    `json:"domain"`
	InterestLevel string    `json:"interest_level,omitempty"` // high / medium / low
	Timestamp     time.Time `json:"timestamp"`
	Context       string    `json:"context,omitempty"`
}

// ConfusionSignal 困惑信号
type ConfusionSignal struct {
	Type      ConfusionType `json:"type"`
	Topic     string        `json:"topic,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Resolved  bool          `json:"resolved"`
}

// CompletedAction 已完成动作
type CompletedAction struct {
	Action    CompletedActionType    `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Interaction 一次轻量交互记录
type Interaction struct {
	Intent    string    `json:"intent,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentMemory 单个学生会话的累积记忆
type StudentMemory struct {
	ExplainedConcepts         []ExplainedConcept `json:"explained_concepts"`
	DiscussedDomains          []DiscussedDomain  `json:"discussed_domains"`
	ConfusionSignals          []ConfusionSignal  `json:"confusion_signals"`
	PreferredExplanationStyle ExplanationStyle   `json:"preferred_explanation_style"`
	CompletedActions          []CompletedAction  `json:"completed_actions"`
	RecentInteractions        []Interaction      `json:"recent_interactions"`
	StudentLevel              string             `json:"student_level,omitempty"` // first-year / second-year / beginner
	FirstInteraction          time.Time          `json:"first_interaction"`
}

// NewStudentMemory 创建默认记忆
func NewStudentMemory() *StudentMemory {
	return &StudentMemory{
		ExplainedConcepts:         []ExplainedConcept{},
		DiscussedDomains:          []DiscussedDomain{},
		ConfusionSignals:          []ConfusionSignal{},
		PreferredExplanationStyle: StyleBalanced,
		CompletedActions:          []CompletedAction{},
		RecentInteractions:        []Interaction{},
		FirstInteraction:          time.Now(),
	}
}

// Prune 按时间倒序裁剪各列表到容量上限，保留最新条目
func (m *StudentMemory) Prune() {
	m.ExplainedConcepts = pruneByTime(m.ExplainedConcepts,
		func(e ExplainedConcept) time.Time { return e.Timestamp }, MaxExplainedConcepts)
	m.DiscussedDomains = pruneByTime(m.DiscussedDomains,
		func(d DiscussedDomain) time.Time { return d.Timestamp }, MaxDiscussedDomains)
	m.ConfusionSignals = pruneByTime(m.ConfusionSignals,
		func(s ConfusionSignal) time.Time { return s.Timestamp }, MaxConfusionSignals)
	m.CompletedActions = pruneByTime(m.CompletedActions,
		func(a CompletedAction) time.Time { return a.Timestamp }, MaxCompletedActions)
	m.RecentInteractions = pruneByTime(m.RecentInteractions,
		func(i Interaction) time.Time { return i.Timestamp }, MaxRecentInteractions)
}

// pruneByTime 稳定地按时间戳倒序排序后截断
func pruneByTime[T any](items []T, ts func(T) time.Time, max int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return ts(items[i]).After(ts(items[j]))
	})
	if len(items) > max {
		items = items[:max]
	}
	return items
}

// ============================================================================
// 🎯 个性化上下文 - 分类器/路由器/执行器统一消费的读取视图
// ============================================================================

// RecentContext 最近交互摘要
type RecentContext struct {
	LastTopic    string   `json:"last_topic,omitempty"`
	LastIntent   string   `json:"last_intent,omitempty"`
	RecentTopics []string `json:"recent_topics"` // 最近3个主题
}

// PersonalizationContext 个性化上下文视图
type PersonalizationContext struct {
	ExplainedConcepts []string              `json:"explained_concepts"`
	DiscussedDomains  []string              `json:"discussed_domains"`
	ConfusionAreas    []ConfusionType       `json:"confusion_areas"` // 仅未解决的
	ExplanationStyle  ExplanationStyle      `json:"explanation_style"`
	CompletedActions  []CompletedActionType `json:"completed_actions"`
	RecentContext     RecentContext         `json:"recent_context"`
	IsFirstTime       bool                  `json:"is_first_time"`
	StudentLevel      string                `json:"student_level,omitempty"`
}

// MemorySummary 记忆透明度摘要（供前端展示"系统记住了什么"）
type MemorySummary struct {
	TotalInteractions      int       `json:"total_interactions"`
	ExplainedConceptsCount int       `json:"explained_concepts_count"`
	DiscussedDomainsCount  int       `json:"discussed_domains_count"`
	ConfusionSignalsCount  int       `json:"confusion_signals_count"`
	CompletedActionsCount  int       `json:"completed_actions_count"`
	FirstInteraction       time.Time `json:"first_interaction"`
}
