// Package api holds the request and response envelopes shared by HTTP handlers.
package api

// ErrorResponse is the body of every failed request.
// Error carries upstream detail on server errors only.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummary is the public view of an account.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// DescriptionResponse carries a drafted listing description.
type DescriptionResponse struct {
	Description string `json:"description"`
}

// HealthResponse is the liveness and readiness payload.
// Checks is set on readiness probes only.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ServerError builds the 500 body, passing the upstream message through.
func ServerError(err error) ErrorResponse {
	r := ErrorResponse{Message: "Server error"}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
