package backend

// Message is a single role-tagged message in the wire format the inference
// backend expects.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params holds tunable parameters for a completion request. Zero values are
// replaced with the client's configured defaults.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Metrics carries performance telemetry extracted from the backend response.
// Every field defaults to 0 when the backend omits it; metrics are advisory
// and never drive control decisions.
type Metrics struct {
	TotalTime          float64 `json:"totalTime"`
	TokensPerSecond    float64 `json:"tokensPerSecond"`
	PromptTokens       int     `json:"promptTokens"`
	CompletionTokens   int     `json:"completionTokens"`
	TotalTokens        int     `json:"totalTokens"`
	PromptEvalDuration float64 `json:"promptEvalDuration"`
	EvalDuration       float64 `json:"evalDuration"`
}

// FailureClass classifies how a completion attempt failed.
type FailureClass int

const (
	// FailureNone means the call succeeded.
	FailureNone FailureClass = iota
	// FailureRemote means the backend was reachable but answered with a
	// non-success status. Callers may treat this as transient.
	FailureRemote
	// FailureTransport means the backend could not be reached, the request
	// timed out, or the response body could not be decoded.
	FailureTransport
)

// Result is the uniform envelope returned for every completion attempt.
// Exactly one of Content/Error is populated depending on Success.
type Result struct {
	Success bool     `json:"success"`
	Content string   `json:"content,omitempty"`
	Error   string   `json:"error,omitempty"`
	Metrics *Metrics `json:"metrics,omitempty"`

	// Failure classifies errors for HTTP status mapping. Not serialized;
	// callers outside this process only see the fields above.
	Failure FailureClass `json:"-"`
}

// completionRequest is the request payload for the backend chat endpoint.
type completionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

// completionResponse mirrors the backend's OpenAI-style response envelope.
// Every field is optional; the backend populates them inconsistently, so
// decoding must tolerate any of them being absent.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens       int     `json:"prompt_tokens"`
		CompletionTokens   int     `json:"completion_tokens"`
		TotalTokens        int     `json:"total_tokens"`
		PromptEvalDuration float64 `json:"prompt_eval_duration"`
		EvalDuration       float64 `json:"eval_duration"`
		TotalDuration      float64 `json:"total_duration"`
		TokensPerSecond    float64 `json:"tokens_per_second"`
	} `json:"usage"`
}
