package models

// ============================================================================
// 🌐 API请求/响应模型
// ============================================================================

// CommandRequest 命令栏提交的自然语言命令
type CommandRequest struct {
	UserID  string `json:"userId,omitempty"`
	Command string `json:"command" binding:"required"`
}

// CommandResponse 命令处理响应，外层包裹执行结果与诊断信息
type CommandResponse struct {
	Result  *ExecutionResult `json:"result"`
	Intent  *Intent          `json:"intent,omitempty"`
	TraceID string           `json:"traceId,omitempty"`
}

// UpdateStyleRequest 更新讲解风格偏好
type UpdateStyleRequest struct {
	UserID string `json:"userId,omitempty"`
	Style  string `json:"style" binding:"required"`
}

// WSCommandFrame WebSocket命令帧
type WSCommandFrame struct {
	Type    string `json:"type"` // "command"
	UserID  string `json:"userId,omitempty"`
	Command string `json:"command"`
}

// WSResultFrame WebSocket结果帧
type WSResultFrame struct {
	Type   string           `json:"type"` // "result" / "error"
	Result *ExecutionResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
