package dto

// AssistRequest asks the agent to handle a support request.
type AssistRequest struct {
	Input  string `json:"input"`
	UserID string `json:"userId"`
}

// AssistResponse carries the agent's reply.
type AssistResponse struct {
	Success   bool             `json:"success"`
	Response  string           `json:"response"`
	Error     string           `json:"error,omitempty"`
	Model     string           `json:"model"`
	ToolCalls []ToolCallRecord `json:"toolCalls"`
}

// ToolCallRecord is one tool call made while answering.
type ToolCallRecord struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Output    string `json:"output"`
	Failed    bool   `json:"failed"`
}
