//go:build !http

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/skillmate/service/internal/config"
)

func main() {
	log.Println("启动 SkillMate STDIO MCP 服务器...")

	// 设置MCP模式环境变量
	os.Setenv("MCP_MODE", "true")

	// 确保日志目录存在
	logDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "skillmate", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("警告: 无法创建日志目录: %v", err)
	}

	// 日志同时写文件和标准错误，避免干扰MCP协议通信（MCP使用stdout）
	logFilePath := filepath.Join(logDir, "skillmate-debug.log")
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("警告: 无法打开日志文件: %v，日志将仅输出到控制台", err)
	} else {
		multiWriter := io.MultiWriter(os.Stderr, logFile)
		log.SetOutput(multiWriter)
		log.Printf("日志将同时输出到文件(%s)和标准错误输出", logFilePath)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 初始化命令管线
	commandService, _ := initializeServices()

	// 创建MCP服务器
	serverOptions := []server.ServerOption{
		server.WithResourceCapabilities(true, true),
	}

	cfg := config.Load()
	if getEnv("DEBUG", fmt.Sprintf("%t", cfg.Debug)) == "true" {
		serverOptions = append(serverOptions, server.WithLogging())
	}

	s := server.NewMCPServer(
		"skillmate",
		"1.0.0",
		serverOptions...,
	)

	registerMCPTools(s, commandService)

	// 启动MCP服务器（阻塞运行）
	log.Println("SkillMate STDIO MCP 服务器已启动，等待连接...")
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("MCP服务器启动失败: %v", err)
	}
}
