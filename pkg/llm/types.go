package llm

// Role names used when replaying history into a prompt.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Status is the outcome of a model call.
type Status string

const (
	StatusOK          Status = "ok"
	StatusFailed      Status = "failed"
	StatusTimeout     Status = "timeout"
	StatusEmpty       Status = "empty"
	StatusCircuitOpen Status = "circuit_open"
)

// Completion is the explicit result of a model call. Text is only
// meaningful when Status is StatusOK.
type Completion struct {
	Text   string
	Status Status
	Err    error
}

// OK reports whether the completion carries usable text.
func (c Completion) OK() bool {
	return c.Status == StatusOK
}
