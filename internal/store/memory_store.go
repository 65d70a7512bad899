package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skillmate/service/internal/models"
)

// =============================================================================
// 💾 学生记忆存储 - 按用户持久化的轻量个性化上下文
// =============================================================================

// MemoryStore 学生记忆存储管理
// 内存缓存 + JSON文件持久化，文件路径: <storePath>/memories/<userID>.json
type MemoryStore struct {
	storePath string
	memories  map[string]*models.StudentMemory
	mu        sync.RWMutex
}

// NewMemoryStore 创建记忆存储
func NewMemoryStore(storePath string) (*MemoryStore, error) {
	log.Printf("[记忆存储] 初始化记忆存储, 路径: %s", storePath)

	memoriesPath := filepath.Join(storePath, "memories")
	if err := os.MkdirAll(memoriesPath, 0755); err != nil {
		log.Printf("[记忆存储] 错误: 创建记忆目录失败: %v", err)
		return nil, fmt.Errorf("创建记忆目录失败: %w", err)
	}

	store := &MemoryStore{
		storePath: storePath,
		memories:  make(map[string]*models.StudentMemory),
	}

	log.Printf("[记忆存储] 记忆存储初始化完成")
	return store, nil
}

// getMemory 获取用户记忆，不存在则从文件加载或创建默认记忆
// 调用方必须持有写锁
func (s *MemoryStore) getMemory(userID string) *models.StudentMemory {
	if memory, exists := s.memories[userID]; exists {
		return memory
	}

	memory := s.loadMemory(userID)
	s.memories[userID] = memory
	return memory
}

// loadMemory 从文件加载记忆，读取或解析失败时回退到默认记忆
func (s *MemoryStore) loadMemory(userID string) *models.StudentMemory {
	filePath := s.memoryFilePath(userID)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[记忆存储] 警告: 读取记忆文件失败: %v", err)
		}
		return models.NewStudentMemory()
	}

	var memory models.StudentMemory
	if err := json.Unmarshal(data, &memory); err != nil {
		log.Printf("[记忆存储] 警告: 解析记忆JSON失败, 使用默认记忆: %v", err)
		return models.NewStudentMemory()
	}

	// 旧数据可能缺少首次交互时间
	if memory.FirstInteraction.IsZero() {
		memory.FirstInteraction = time.Now()
	}
	if memory.PreferredExplanationStyle == "" {
		memory.PreferredExplanationStyle = models.StyleBalanced
	}

	return &memory
}

// saveMemory 裁剪并持久化记忆，存储失败只记录日志不阻断主流程
func (s *MemoryStore) saveMemory(userID string, memory *models.StudentMemory) {
	memory.Prune()

	data, err := json.Marshal(memory)
	if err != nil {
		log.Printf("[记忆存储] 错误: 序列化记忆失败: %v", err)
		return
	}

	filePath := s.memoryFilePath(userID)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		log.Printf("[记忆存储] 错误: 创建记忆目录失败: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("[记忆存储] 错误: 写入记忆文件失败: %v", err)
	}
}

// memoryFilePath 记忆文件路径
func (s *MemoryStore) memoryFilePath(userID string) string {
	return filepath.Join(s.storePath, "memories", userID+".json")
}

// =============================================================================
// 📝 写入操作
// =============================================================================

// RecordExplainedConcept 记录一次已讲解的概念
func (s *MemoryStore) RecordExplainedConcept(userID, concept, domain string, style models.ExplanationStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	if style == "" {
		style = memory.PreferredExplanationStyle
	}

	memory.ExplainedConcepts = append(memory.ExplainedConcepts, models.ExplainedConcept{
		Concept:          concept,
		Domain:           domain,
		Timestamp:        time.Now(),
		ExplanationStyle: style,
	})
	s.saveMemory(userID, memory)
}

// RecordDiscussedDomain 记录讨论过的方向
// 方向名大小写不敏感去重，已存在时更新时间戳并按需覆盖兴趣级别/上下文
func (s *MemoryStore) RecordDiscussedDomain(userID, domain, interestLevel, context string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	lower := strings.ToLower(domain)

	for i := range memory.DiscussedDomains {
		if strings.ToLower(memory.DiscussedDomains[i].Domain) == lower {
			if interestLevel != "" {
				memory.DiscussedDomains[i].InterestLevel = interestLevel
			}
			if context != "" {
				memory.DiscussedDomains[i].Context = context
			}
			memory.DiscussedDomains[i].Timestamp = time.Now()
			s.saveMemory(userID, memory)
			return
		}
	}

	memory.DiscussedDomains = append(memory.DiscussedDomains, models.DiscussedDomain{
		Domain:        domain,
		InterestLevel: interestLevel,
		Timestamp:     time.Now(),
		Context:       context,
	})
	s.saveMemory(userID, memory)
}

// RecordConfusionSignal 记录困惑信号，初始为未解决
func (s *MemoryStore) RecordConfusionSignal(userID string, confusionType models.ConfusionType, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	memory.ConfusionSignals = append(memory.ConfusionSignals, models.ConfusionSignal{
		Type:      confusionType,
		Topic:     topic,
		Timestamp: time.Now(),
		Resolved:  false,
	})
	s.saveMemory(userID, memory)
}

// ResolveConfusionSignal 将首个匹配的未解决困惑信号标记为已解决
// topic为空时只按类别匹配
func (s *MemoryStore) ResolveConfusionSignal(userID string, confusionType models.ConfusionType, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	lowerTopic := strings.ToLower(topic)

	for i := range memory.ConfusionSignals {
		signal := &memory.ConfusionSignals[i]
		if signal.Type != confusionType || signal.Resolved {
			continue
		}
		if topic != "" && strings.ToLower(signal.Topic) != lowerTopic {
			continue
		}
		signal.Resolved = true
		s.saveMemory(userID, memory)
		return
	}
}

// RecordCompletedAction 记录已完成动作
func (s *MemoryStore) RecordCompletedAction(userID string, action models.CompletedActionType, details map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	memory.CompletedActions = append(memory.CompletedActions, models.CompletedAction{
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
	s.saveMemory(userID, memory)
}

// RecordInteraction 记录一次轻量交互
func (s *MemoryStore) RecordInteraction(userID, intent, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	memory.RecentInteractions = append(memory.RecentInteractions, models.Interaction{
		Intent:    intent,
		Topic:     topic,
		Timestamp: time.Now(),
	})
	s.saveMemory(userID, memory)
}

// UpdateExplanationStyle 更新讲解风格偏好
func (s *MemoryStore) UpdateExplanationStyle(userID string, style models.ExplanationStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	memory.PreferredExplanationStyle = style
	s.saveMemory(userID, memory)
}

// Clear 清空用户记忆（隐私/测试场景）
func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.memories, userID)
	if err := os.Remove(s.memoryFilePath(userID)); err != nil && !os.IsNotExist(err) {
		log.Printf("[记忆存储] 警告: 删除记忆文件失败: %v", err)
	}
}

// =============================================================================
// 🔍 读取操作
// =============================================================================

// WasConceptExplained 检查概念是否已讲解过（大小写不敏感）
// domain非空时要求方向匹配，但任一侧未记录方向视为匹配
func (s *MemoryStore) WasConceptExplained(userID, concept, domain string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	lowerConcept := strings.ToLower(concept)
	lowerDomain := strings.ToLower(domain)

	for _, item := range memory.ExplainedConcepts {
		if strings.ToLower(item.Concept) != lowerConcept {
			continue
		}
		if domain == "" || item.Domain == "" || strings.ToLower(item.Domain) == lowerDomain {
			return true
		}
	}
	return false
}

// GetMostDiscussedDomains 按提及次数降序返回讨论最多的方向
// 次数相同时按首次出现顺序排列
func (s *MemoryStore) GetMostDiscussedDomains(userID string, limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)

	type domainCount struct {
		domain     string
		count      int
		firstIndex int
	}

	counts := make(map[string]*domainCount)
	order := []*domainCount{}
	for i, d := range memory.DiscussedDomains {
		if dc, exists := counts[d.Domain]; exists {
			dc.count++
			continue
		}
		dc := &domainCount{domain: d.Domain, count: 1, firstIndex: i}
		counts[d.Domain] = dc
		order = append(order, dc)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].firstIndex < order[j].firstIndex
	})

	if limit > 0 && limit < len(order) {
		order = order[:limit]
	}

	result := make([]string, len(order))
	for i, dc := range order {
		result[i] = dc.domain
	}
	return result
}

// WasActionCompleted 检查动作是否已完成过
func (s *MemoryStore) WasActionCompleted(userID string, action models.CompletedActionType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	for _, a := range memory.CompletedActions {
		if a.Action == action {
			return true
		}
	}
	return false
}

// GetUnresolvedConfusionSignals 获取未解决的困惑信号
func (s *MemoryStore) GetUnresolvedConfusionSignals(userID string) []models.ConfusionSignal {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	result := []models.ConfusionSignal{}
	for _, signal := range memory.ConfusionSignals {
		if !signal.Resolved {
			result = append(result, signal)
		}
	}
	return result
}

// GetPersonalizationContext 构建个性化上下文视图
// 分类器提示词、路由器个性化和执行器响应生成都消费该视图
func (s *MemoryStore) GetPersonalizationContext(userID string) *models.PersonalizationContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)

	concepts := make([]string, 0, len(memory.ExplainedConcepts))
	for _, c := range memory.ExplainedConcepts {
		concepts = append(concepts, c.Concept)
	}

	domains := make([]string, 0, len(memory.DiscussedDomains))
	for _, d := range memory.DiscussedDomains {
		domains = append(domains, d.Domain)
	}

	confusionAreas := []models.ConfusionType{}
	for _, signal := range memory.ConfusionSignals {
		if !signal.Resolved {
			confusionAreas = append(confusionAreas, signal.Type)
		}
	}

	actions := make([]models.CompletedActionType, 0, len(memory.CompletedActions))
	for _, a := range memory.CompletedActions {
		actions = append(actions, a.Action)
	}

	return &models.PersonalizationContext{
		ExplainedConcepts: concepts,
		DiscussedDomains:  domains,
		ConfusionAreas:    confusionAreas,
		ExplanationStyle:  memory.PreferredExplanationStyle,
		CompletedActions:  actions,
		RecentContext:     buildRecentContext(memory),
		IsFirstTime:       len(memory.RecentInteractions) <= 1,
		StudentLevel:      memory.StudentLevel,
	}
}

// buildRecentContext 从最近5次交互中提取摘要
// 裁剪后交互列表按时间倒序排列，最新的在最前
func buildRecentContext(memory *models.StudentMemory) models.RecentContext {
	interactions := memory.RecentInteractions
	if len(interactions) > 5 {
		interactions = interactions[:5]
	}

	ctx := models.RecentContext{RecentTopics: []string{}}
	if len(interactions) > 0 {
		ctx.LastTopic = interactions[0].Topic
		ctx.LastIntent = interactions[0].Intent
	}

	for _, i := range interactions {
		if i.Topic != "" {
			ctx.RecentTopics = append(ctx.RecentTopics, i.Topic)
		}
		if len(ctx.RecentTopics) == 3 {
			break
		}
	}

	return ctx
}

// Summary 记忆透明度摘要
func (s *MemoryStore) Summary(userID string) *models.MemorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.getMemory(userID)
	return &models.MemorySummary{
		TotalInteractions:      len(memory.RecentInteractions),
		ExplainedConceptsCount: len(memory.ExplainedConcepts),
		DiscussedDomainsCount:  len(memory.DiscussedDomains),
		ConfusionSignalsCount:  len(memory.ConfusionSignals),
		CompletedActionsCount:  len(memory.CompletedActions),
		FirstInteraction:       memory.FirstInteraction,
	}
}

// GetStorePath 获取存储路径
func (s *MemoryStore) GetStorePath() string {
	return s.storePath
}
