package llm

import (
	"testing"
)

// 测试纯JSON直接解析
func TestExtractJSON_Plain(t *testing.T) {
	var out struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}

	raw := `{"intent": "EXPLAIN_CONCEPT", "confidence": 0.9}`
	if err := ExtractJSON(raw, &out); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if out.Intent != "EXPLAIN_CONCEPT" {
		t.Errorf("intent = %q, 期望 EXPLAIN_CONCEPT", out.Intent)
	}
	if out.Confidence != 0.9 {
		t.Errorf("confidence = %v, 期望 0.9", out.Confidence)
	}
}

// 测试带markdown围栏的输出
func TestExtractJSON_CodeFence(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}

	raw := "```json\n{\"title\": \"Software Development\"}\n```"
	if err := ExtractJSON(raw, &out); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if out.Title != "Software Development" {
		t.Errorf("title = %q", out.Title)
	}
}

// 测试夹带解说文字时抽取首个配平对象
func TestExtractJSON_SurroundingText(t *testing.T) {
	var out struct {
		Topic string `json:"topic"`
	}

	raw := "Here is the result you asked for:\n{\"topic\": \"recursion\"}\nHope this helps!"
	if err := ExtractJSON(raw, &out); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if out.Topic != "recursion" {
		t.Errorf("topic = %q", out.Topic)
	}
}

// 测试嵌套对象与字符串内花括号
func TestExtractJSON_NestedAndStringBraces(t *testing.T) {
	var out struct {
		Message string `json:"message"`
		Detail  struct {
			Level string `json:"level"`
		} `json:"detail"`
	}

	raw := `prefix {"message": "use {} braces carefully", "detail": {"level": "beginner"}} suffix`
	if err := ExtractJSON(raw, &out); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if out.Message != "use {} braces carefully" {
		t.Errorf("message = %q", out.Message)
	}
	if out.Detail.Level != "beginner" {
		t.Errorf("detail.level = %q", out.Detail.Level)
	}
}

// 测试无JSON内容时报错
func TestExtractJSON_NoObject(t *testing.T) {
	var out map[string]interface{}

	if err := ExtractJSON("I'm sorry, I can't produce that.", &out); err == nil {
		t.Error("期望报错，但解析成功")
	}
	if err := ExtractJSON("   ", &out); err == nil {
		t.Error("空内容期望报错")
	}
	if err := ExtractJSON("{\"unclosed\": true", &out); err == nil {
		t.Error("未配平对象期望报错")
	}
}
