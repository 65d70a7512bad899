package command

import (
	"context"
	"log"

	"github.com/skillmate/service/internal/intelligence"
	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/models"
	"github.com/skillmate/service/internal/store"
)

// ============================================================================
// 🎯 命令服务 - 分类→路由→执行 三级管线的组装入口
// ============================================================================

// DefaultUserID 未携带用户标识时使用的默认用户
const DefaultUserID = "default"

// Service 命令处理服务
type Service struct {
	classifier *Classifier
	router     *Router
	executor   *Executor
	memory     *store.MemoryStore
}

// NewService 组装命令处理管线
func NewService(client llm.LLMClient, memory *store.MemoryStore) *Service {
	generator := intelligence.NewGenerator(client)
	return &Service{
		classifier: NewClassifier(client, memory),
		router:     NewRouter(memory),
		executor:   NewExecutor(client, memory, generator),
		memory:     memory,
	}
}

// ProcessCommand 处理一条自然语言命令，返回执行结果和识别出的意图
// 三级管线各自兜底，永远返回可渲染的结果
func (s *Service) ProcessCommand(ctx context.Context, userID, command string) (*models.ExecutionResult, *models.Intent) {
	if userID == "" {
		userID = DefaultUserID
	}

	intent := s.classifier.Classify(ctx, userID, command)
	decision := s.router.Route(userID, intent)

	log.Printf("[命令服务] user=%s intent=%s action=%s confidence=%.2f",
		userID, intent.Intent, decision.Action, decision.Confidence)

	result := s.executor.Execute(ctx, userID, decision)
	return result, intent
}

// Memory 暴露记忆存储，供透明度接口使用
func (s *Service) Memory() *store.MemoryStore {
	return s.memory
}

// Generator 领域智能生成器入口，供预览接口使用
func (s *Service) Generator() *intelligence.Generator {
	return s.executor.generator
}
