package dto

// APIError is the JSON error envelope returned by all endpoints.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BadRequestError describes a malformed request body or parameter.
func BadRequestError(message string) APIError {
	return APIError{Error: "bad_request", Message: message}
}

// NotFoundError describes a missing resource.
func NotFoundError(resource string) APIError {
	return APIError{Error: "not_found", Message: resource + " not found"}
}

// InternalError describes an unexpected server-side failure. Details
// stay in the logs.
func InternalError() APIError {
	return APIError{Error: "internal_error", Message: "an unexpected error occurred"}
}
