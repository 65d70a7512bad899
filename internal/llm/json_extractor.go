package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// 防御性JSON抽取 - 模型输出经常夹带围栏和解说文字
// =============================================================================

// ExtractJSON 从模型输出中抽取首个JSON对象并反序列化到target。
// 依次尝试：去除首尾空白、剥掉```json围栏、扫描首个花括号配平的片段。
func ExtractJSON(raw string, target interface{}) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Errorf("empty response content")
	}

	s = stripCodeFences(s)

	obj, ok := firstBalancedObject(s)
	if !ok {
		return fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(obj), target); err != nil {
		return fmt.Errorf("unmarshal extracted JSON failed: %w", err)
	}
	return nil
}

// stripCodeFences 剥掉markdown代码围栏（```json ... ``` 或 ``` ... ```）
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// firstBalancedObject 扫描首个花括号配平的 {...} 片段，
// 跳过字符串字面量内部的花括号与转义字符
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
