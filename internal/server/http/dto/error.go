package dto

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Detail string `json:"detail,omitempty"`
}
