package response

import "time"

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      any               `json:"data,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp string            `json:"timestamp"`
}

func Success(message string, data any) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func Error(message string, fieldErrors map[string]string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Errors:    fieldErrors,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
