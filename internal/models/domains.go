package models

import "strings"

// ============================================================================
// 🏗️ CS方向枚举 - 全管线共用的五个固定方向
// ============================================================================

// CSDomain 计算机科学方向，闭合枚举
type CSDomain string

const (
	DomainSoftwareDevelopment CSDomain = "Software Development"
	DomainAIMachineLearning   CSDomain = "AI & Machine Learning"
	DomainDataScience         CSDomain = "Data Science"
	DomainCybersecurity       CSDomain = "Cybersecurity"
	DomainCloudDevOps         CSDomain = "Cloud & DevOps"
)

// AllDomains 五个方向的固定顺序（跟随用菜单展示顺序）
func AllDomains() []CSDomain {
	return []CSDomain{
		DomainSoftwareDevelopment,
		DomainAIMachineLearning,
		DomainDataScience,
		DomainCybersecurity,
		DomainCloudDevOps,
	}
}

// domainKeywordTable 主题关键词到方向的映射表
// 注意：这是版本化的常量表，匹配按切片顺序进行，先命中先返回
var domainKeywordTable = []struct {
	keyword string
	domain  CSDomain
}{
	{"software development", DomainSoftwareDevelopment},
	{"software", DomainSoftwareDevelopment},
	{"programming", DomainSoftwareDevelopment},
	{"web development", DomainSoftwareDevelopment},
	{"app development", DomainSoftwareDevelopment},
	{"machine learning", DomainAIMachineLearning},
	{"artificial intelligence", DomainAIMachineLearning},
	{"ai", DomainAIMachineLearning},
	{"ml", DomainAIMachineLearning},
	{"data science", DomainDataScience},
	{"analytics", DomainDataScience},
	{"data", DomainDataScience},
	{"cybersecurity", DomainCybersecurity},
	{"security", DomainCybersecurity},
	{"cyber", DomainCybersecurity},
	{"cloud", DomainCloudDevOps},
	{"devops", DomainCloudDevOps},
	{"infrastructure", DomainCloudDevOps},
}

// IsValidDomain 校验字符串是否是五个合法方向之一（大小写不敏感）
func IsValidDomain(s string) bool {
	_, ok := ParseDomain(s)
	return ok
}

// ParseDomain 大小写不敏感地解析方向名
func ParseDomain(s string) (CSDomain, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, d := range AllDomains() {
		if strings.ToLower(string(d)) == lower {
			return d, true
		}
	}
	return "", false
}

// DetectDomainFromTopic 从主题文本中识别方向
// 使用包含匹配：主题中出现任一关键词即命中对应方向
func DetectDomainFromTopic(topic string) (CSDomain, bool) {
	lower := strings.ToLower(topic)
	for _, entry := range domainKeywordTable {
		if strings.Contains(lower, entry.keyword) {
			return entry.domain, true
		}
	}
	return "", false
}

// IsDomainTopic 主题是否与某个方向相关
func IsDomainTopic(topic string) bool {
	_, ok := DetectDomainFromTopic(topic)
	return ok
}
