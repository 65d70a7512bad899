package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================================
// ⚙️ 应用配置 - .env文件 + 环境变量
// ============================================================================

// Config 应用配置
type Config struct {
	// 服务配置
	ServiceName string
	Port        int
	Debug       bool
	StoragePath string
	Host        string // 服务监听地址
	GinMode     string // Gin运行模式

	// LongCat LLM配置
	LongCatAPIKey  string
	LongCatBaseURL string
	LongCatModel   string

	// LLM调用阈值
	LLMTimeout    time.Duration // 单次调用超时
	LLMRateLimit  int           // 每分钟请求上限
	LLMMaxRetries int           // 最大重试次数
}

// Load 从环境变量加载配置
func Load() *Config {
	// 尝试加载.env文件，优先config目录，兼容项目根目录
	envPaths := []string{
		"config/.env",
		".env",
	}

	loaded := false
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				log.Printf("成功加载.env文件: %s", path)
				loaded = true
				break
			}
		}
	}

	if !loaded {
		log.Printf("警告: 未找到.env文件，尝试使用系统环境变量")
	}

	config := &Config{
		// 服务配置默认值
		ServiceName: getEnv("SERVICE_NAME", "skillmate"),
		Port:        getEnvAsInt("PORT", 8090),
		Debug:       getEnvAsBool("DEBUG", false),
		StoragePath: getStoragePathDefault(),
		Host:        getEnv("HOST", "0.0.0.0"),
		GinMode:     getEnv("GIN_MODE", "release"),

		// LongCat LLM配置
		LongCatAPIKey:  getEnv("LONGCAT_API_KEY", ""),
		LongCatBaseURL: getEnv("LONGCAT_BASE_URL", "https://api.longcat.chat/openai/v1"),
		LongCatModel:   getEnv("LONGCAT_MODEL", "LongCat-Flash-Chat"),

		// LLM调用阈值
		LLMTimeout:    getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		LLMRateLimit:  getEnvAsInt("LLM_RATE_LIMIT", 60),
		LLMMaxRetries: getEnvAsInt("LLM_MAX_RETRIES", 3),
	}

	// 确保存储路径存在
	if err := ensureDir(config.StoragePath); err != nil {
		log.Printf("警告: 创建存储目录失败: %v", err)
	}

	return config
}

// String 返回配置的字符串表示
func (c *Config) String() string {
	return fmt.Sprintf(
		"服务名称: %s, 端口: %d, 调试模式: %v, 存储路径: %s, LLM模型: %s, LLM密钥: %s, "+
			"LLM超时: %v, 限流: %d/分钟, 最大重试: %d",
		c.ServiceName, c.Port, c.Debug, c.StoragePath,
		c.LongCatModel, maskString(c.LongCatAPIKey),
		c.LLMTimeout, c.LLMRateLimit, c.LLMMaxRetries,
	)
}

// 从环境变量获取字符串值
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// 从环境变量获取整数值
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return defaultValue
}

// 从环境变量获取布尔值
func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return defaultValue
}

// 从环境变量获取时间值
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return defaultValue
}

// 确保目录存在
func ensureDir(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, 0755)
	}
	return nil
}

// 掩码字符串，用于日志输出安全
func maskString(input string) string {
	if len(input) <= 8 {
		return "***"
	}
	return input[:4] + "..." + input[len(input)-4:]
}

// 获取存储路径的默认值（使用操作系统标准应用数据目录）
func getStoragePathDefault() string {
	appName := "skillmate"

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Printf("警告: 无法获取用户主目录: %v", err)
		return "./data"
	}

	var dataPath string

	switch runtime.GOOS {
	case "darwin":
		// ~/Library/Application Support/skillmate/
		dataPath = filepath.Join(homeDir, "Library", "Application Support", appName)

	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dataPath = filepath.Join(appData, appName)
		} else {
			dataPath = filepath.Join(homeDir, "AppData", "Roaming", appName)
		}

	default: // Linux和其他UNIX系统
		// ~/.local/share/skillmate/
		dataPath = filepath.Join(homeDir, ".local", "share", appName)
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			dataPath = filepath.Join(xdgDataHome, appName)
		}
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		log.Printf("警告: 创建数据目录失败: %v", err)

		fallbackPath := filepath.Join(homeDir, "."+appName)
		if err := os.MkdirAll(fallbackPath, 0755); err != nil {
			log.Printf("警告: 创建回退目录也失败: %v", err)
			return "./data"
		}
		return fallbackPath
	}

	return dataPath
}
