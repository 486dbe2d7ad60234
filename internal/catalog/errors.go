package catalog

import "fmt"

// TransportError reports a non-2xx HTTP response.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalogue api unavailable (HTTP %d)", e.StatusCode)
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ApplicationError reports a payload whose status is not "success".
type ApplicationError struct {
	Message string
}

const genericApplicationMessage = "request was not successful"

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return genericApplicationMessage
	}
	return e.Message
}
