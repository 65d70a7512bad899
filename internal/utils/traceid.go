package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"runtime"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// 🔍 TraceID - 请求级追踪标识，标准log与logrus双通道注入
// ============================================================================

// TraceIDKey gin上下文与日志字段的键名
const TraceIDKey = "traceId"

// goroutine局部的TraceID表
var (
	traceIDMap   = make(map[uint64]string)
	traceIDMutex = sync.RWMutex{}
)

// TraceIDWriter 拦截标准log输出，把TraceID插到时间戳后面
type TraceIDWriter struct {
	originalWriter io.Writer
	timeRegex      *regexp.Regexp
}

func NewTraceIDWriter(originalWriter io.Writer) *TraceIDWriter {
	return &TraceIDWriter{
		originalWriter: originalWriter,
		// 匹配Go标准log的时间戳格式：2025/07/12 11:24:30
		timeRegex: regexp.MustCompile(`^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})\s`),
	}
}

func (w *TraceIDWriter) Write(p []byte) (n int, err error) {
	logLine := string(p)

	traceID := GetTraceID()
	if traceID != "" && w.timeRegex.MatchString(logLine) {
		logLine = w.timeRegex.ReplaceAllString(logLine, fmt.Sprintf("$1 【%s】", traceID))
	}

	return w.originalWriter.Write([]byte(logLine))
}

// GenerateTraceID 生成8字节十六进制TraceID
func GenerateTraceID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return fmt.Sprintf("%x", bytes)
}

// 获取当前goroutine ID
// stack trace格式: "goroutine 123 [running]:"
func getGoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]

	var gid uint64
	fmt.Sscanf(string(b), "goroutine %d ", &gid)
	return gid
}

// SetTraceID 设置当前goroutine的TraceID
func SetTraceID(traceID string) {
	gid := getGoroutineID()
	traceIDMutex.Lock()
	traceIDMap[gid] = traceID
	traceIDMutex.Unlock()
}

// GetTraceID 获取当前goroutine的TraceID
func GetTraceID() string {
	gid := getGoroutineID()
	traceIDMutex.RLock()
	traceID := traceIDMap[gid]
	traceIDMutex.RUnlock()
	return traceID
}

// ClearTraceID 清理当前goroutine的TraceID
func ClearTraceID() {
	gid := getGoroutineID()
	traceIDMutex.Lock()
	delete(traceIDMap, gid)
	traceIDMutex.Unlock()
}

// TraceIDHook 把TraceID注入logrus字段
type TraceIDHook struct{}

// Levels 返回适用的日志级别
func (hook *TraceIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 在每次日志记录时触发
func (hook *TraceIDHook) Fire(entry *logrus.Entry) error {
	if traceID := GetTraceID(); traceID != "" {
		entry.Data[TraceIDKey] = traceID
	}
	return nil
}

// InitTraceIDSystem 初始化TraceID系统
func InitTraceIDSystem() {
	traceIDWriter := NewTraceIDWriter(os.Stdout)
	log.SetOutput(traceIDWriter)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
		ForceColors:     false,
		DisableColors:   true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", f.File, f.Line)
		},
	})
	logrus.SetReportCaller(true)
	logrus.AddHook(&TraceIDHook{})
	logrus.SetOutput(traceIDWriter)

	log.Printf("TraceID系统初始化完成 - 支持标准log包和logrus双重输出")
}

// TraceIDMiddleware gin中间件：请求头复用或生成TraceID，响应头回写
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = GenerateTraceID()
		}

		SetTraceID(traceID)
		c.Set(TraceIDKey, traceID)
		c.Header("X-Trace-ID", traceID)

		c.Next()

		ClearTraceID()
	}
}

// GetTraceIDFromGin 从gin上下文获取TraceID
func GetTraceIDFromGin(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		return traceID.(string)
	}
	return ""
}
