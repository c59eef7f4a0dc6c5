package dto

// Envelope is the uniform shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a successful envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failed envelope carrying a short human-readable error.
func Fail(errMsg string) Envelope {
	return Envelope{Success: false, Error: errMsg}
}
