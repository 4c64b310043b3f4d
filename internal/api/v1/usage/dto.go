package usage

// ExecuteInput carries the submitted form values keyed by input field name.
type ExecuteInput struct {
	Inputs map[string]interface{} `json:"inputs"`
}

// ExecuteResponse is the outcome of one completed invocation.
type ExecuteResponse struct {
	UsageID    string  `json:"usage_id"`
	Content    string  `json:"content"`
	TokensUsed int     `json:"tokens_used"`
	Cost       float64 `json:"cost"`
}
