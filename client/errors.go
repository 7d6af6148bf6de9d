package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownErrorCode is reported when the error body could not be parsed.
const UnknownErrorCode = "unknown_error"

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string

	// detailed is set when Message came from the response body.
	detailed bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sponge api error (%d): %s - %s", e.StatusCode, e.ErrorCode, e.Message)
}

type errorBody struct {
	Error            string `json:"error"`
	Message          string `json:"message"`
	ErrorDescription string `json:"errorDescription"`
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  UnknownErrorCode,
		Message:    "HTTP " + resp.Status,
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return apiErr
	}

	apiErr.ErrorCode = parsed.Error
	switch {
	case parsed.Message != "":
		apiErr.Message = parsed.Message
		apiErr.detailed = true
	case parsed.ErrorDescription != "":
		apiErr.Message = parsed.ErrorDescription
		apiErr.detailed = true
	}
	return apiErr
}

// Description is the server's message, or the error code when the body had none.
func (e *APIError) Description() string {
	if e.detailed || e.ErrorCode == UnknownErrorCode {
		return e.Message
	}
	return e.ErrorCode
}

// AsAPIError unwraps err into an *APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
