package transport

import "encoding/json"

// ErrorBody carries the machine-readable code and human-readable message of
// a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response. Successful responses
// carry the bare resource JSON instead of an envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds an error response.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorResponse) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
