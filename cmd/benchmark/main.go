package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/schollz/progressbar/v3"

	"github.com/skillmate/service/internal/command"
	"github.com/skillmate/service/internal/llm"
	"github.com/skillmate/service/internal/store"
)

// ============================================================================
// 📊 性能基准 - 离线测量命令管线吞吐，LLM用模拟客户端替代
// ============================================================================

// Result 存储单项基准测试结果
type Result struct {
	Name        string        `json:"name"`
	Operations  int           `json:"operations"`
	TotalTime   time.Duration `json:"total_time"`
	AverageTime time.Duration `json:"average_time"`
	MinTime     time.Duration `json:"min_time"`
	MaxTime     time.Duration `json:"max_time"`
	SuccessRate float64       `json:"success_rate"`
}

// Suite 存储完整基准测试结果
type Suite struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Environment  string    `json:"environment"`
	Results      []Result  `json:"results"`
	TestDataSize int       `json:"test_data_size"`
}

// mockLLMClient 模拟LLM客户端，按请求预算返回相应形状的内容并模拟API延迟
type mockLLMClient struct{}

var mockIntents = []string{
	`{"intent": "EXPLAIN_CONCEPT", "topic": "Machine Learning", "confidence": 0.92, "context": "wants explanation"}`,
	`{"intent": "SHOW_ROADMAP", "domain": "Data Science", "confidence": 0.88, "context": "wants roadmap"}`,
	`{"intent": "START_APTITUDE_TEST", "confidence": 0.95, "context": "wants assessment"}`,
	`{"intent": "CONFUSION_HELP", "confidence": 0.85, "context": "confused about domain choice"}`,
	`{"intent": "NAVIGATE", "confidence": 0.9, "context": "", "parameters": {"page": "dashboard"}}`,
}

func (mockLLMClient) Complete(_ context.Context, req *llm.LLMRequest) (*llm.LLMResponse, error) {
	// 模拟真实API调用延迟
	time.Sleep(time.Duration(20+rand.Intn(30)) * time.Millisecond)

	var content string
	switch req.MaxTokens {
	case 500:
		content = mockIntents[rand.Intn(len(mockIntents))]
	case 200:
		content = "Could you tell me which topic you'd like to explore?"
	case 300:
		content = "It's completely normal to feel this way. Take it one step at a time."
	default:
		content = gofakeit.Paragraph(2, 4, 20, " ")
	}

	return &llm.LLMResponse{Content: content, Model: "mock-model"}, nil
}

func (mockLLMClient) HealthCheck(context.Context) error { return nil }
func (mockLLMClient) GetModel() string                  { return "mock-model" }

// generateCommands 生成随机学生命令样本
func generateCommands(count int) ([]string, []string) {
	gofakeit.Seed(time.Now().UnixNano())

	userIDs := make([]string, count)
	commands := make([]string, count)

	samples := []func() string{
		func() string { return "what is " + gofakeit.BuzzWord() },
		func() string { return "explain " + gofakeit.BuzzWord() + " to me" },
		func() string { return "show me a roadmap for data science" },
		func() string { return "i am confused about which domain to choose" },
		func() string { return "start the aptitude test" },
		func() string { return "go to dashboard" },
		func() string { return "how do i learn cybersecurity" },
	}

	for i := 0; i < count; i++ {
		userIDs[i] = fmt.Sprintf("bench-user-%d", i%20)
		commands[i] = samples[rand.Intn(len(samples))]()
	}

	return userIDs, commands
}

// benchCommandPipeline 基准测试：完整命令管线
func benchCommandPipeline(service *command.Service, count int) Result {
	result := Result{
		Name:       "命令管线",
		Operations: count,
		MinTime:    time.Hour, // 初始值设为很大
	}

	userIDs, commands := generateCommands(count)
	bar := progressbar.Default(int64(count), "命令管线测试")

	var successCount int
	var totalTime time.Duration

	for i := 0; i < count; i++ {
		start := time.Now()
		execResult, _ := service.ProcessCommand(context.Background(), userIDs[i], commands[i])
		elapsed := time.Since(start)
		totalTime += elapsed

		if elapsed < result.MinTime {
			result.MinTime = elapsed
		}
		if elapsed > result.MaxTime {
			result.MaxTime = elapsed
		}
		if execResult != nil && execResult.Success {
			successCount++
		}

		bar.Add(1)
	}

	result.TotalTime = totalTime
	result.AverageTime = totalTime / time.Duration(count)
	result.SuccessRate = float64(successCount) / float64(count) * 100

	return result
}

// benchConcurrentCommands 基准测试：并发命令处理
func benchConcurrentCommands(service *command.Service, count, workers int) Result {
	result := Result{
		Name:       fmt.Sprintf("并发命令处理(%d并发)", workers),
		Operations: count,
	}

	userIDs, commands := generateCommands(count)
	bar := progressbar.Default(int64(count), "并发命令测试")

	var mu sync.Mutex
	var successCount int
	var wg sync.WaitGroup

	jobs := make(chan int, count)
	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				execResult, _ := service.ProcessCommand(context.Background(), userIDs[i], commands[i])
				mu.Lock()
				if execResult != nil && execResult.Success {
					successCount++
				}
				mu.Unlock()
				bar.Add(1)
			}
		}()
	}
	wg.Wait()

	result.TotalTime = time.Since(start)
	result.AverageTime = result.TotalTime / time.Duration(count)
	result.MinTime = result.AverageTime
	result.MaxTime = result.AverageTime
	result.SuccessRate = float64(successCount) / float64(count) * 100

	return result
}

// benchMemoryReads 基准测试：记忆读取
func benchMemoryReads(memory *store.MemoryStore, count int) Result {
	result := Result{
		Name:       "记忆读取",
		Operations: count,
		MinTime:    time.Hour, // 初始值设为很大
	}

	bar := progressbar.Default(int64(count), "记忆读取测试")

	var totalTime time.Duration
	for i := 0; i < count; i++ {
		userID := fmt.Sprintf("bench-user-%d", i%20)

		start := time.Now()
		memory.GetPersonalizationContext(userID)
		elapsed := time.Since(start)
		totalTime += elapsed

		if elapsed < result.MinTime {
			result.MinTime = elapsed
		}
		if elapsed > result.MaxTime {
			result.MaxTime = elapsed
		}

		bar.Add(1)
	}

	result.TotalTime = totalTime
	result.AverageTime = totalTime / time.Duration(count)
	result.SuccessRate = 100

	return result
}

func main() {
	testCount := 100
	concurrentWorkers := 10

	tempDir, err := os.MkdirTemp("", "skillmate-bench-")
	if err != nil {
		log.Fatalf("创建临时目录失败: %v", err)
	}
	defer os.RemoveAll(tempDir)

	memory, err := store.NewMemoryStore(tempDir)
	if err != nil {
		log.Fatalf("初始化记忆存储失败: %v", err)
	}
	service := command.NewService(mockLLMClient{}, memory)

	suite := Suite{
		StartTime:    time.Now(),
		Environment:  fmt.Sprintf("%d核CPU", 4),
		TestDataSize: testCount,
	}

	fmt.Printf("开始SkillMate命令管线基准测试，样本数: %d\n\n", testCount)

	suite.Results = append(suite.Results, benchCommandPipeline(service, testCount))
	suite.Results = append(suite.Results, benchConcurrentCommands(service, testCount, concurrentWorkers))
	suite.Results = append(suite.Results, benchMemoryReads(memory, testCount))

	suite.EndTime = time.Now()

	// 输出汇总
	fmt.Printf("\n基准测试完成，总耗时: %v\n\n", suite.EndTime.Sub(suite.StartTime))
	for _, r := range suite.Results {
		fmt.Printf("%-20s 操作数: %d, 平均: %v, 最小: %v, 最大: %v, 成功率: %.1f%%\n",
			r.Name, r.Operations, r.AverageTime, r.MinTime, r.MaxTime, r.SuccessRate)
	}

	// 保存JSON报告
	reportPath := filepath.Join(".", fmt.Sprintf("benchmark-%s.json", time.Now().Format("20060102-150405")))
	payload, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		log.Fatalf("序列化报告失败: %v", err)
	}
	if err := os.WriteFile(reportPath, payload, 0644); err != nil {
		log.Fatalf("写入报告失败: %v", err)
	}
	fmt.Printf("\n报告已保存: %s\n", reportPath)
}
