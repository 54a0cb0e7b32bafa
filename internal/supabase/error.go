package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoSession     = errors.New("no authenticated session")
	ErrEmptyResponse = errors.New("backend returned no rows")
)

// APIError is a non-2xx answer from any backend endpoint.
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("backend error: status %d: %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("backend error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func (e *APIError) ClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

func (e *APIError) ServerError() bool {
	return e.Status >= 500
}

// AsAPIError unwraps err into an *APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody covers both the REST layer ({code,message}) and the auth
// layer ({error,error_description} or {msg}).
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	ErrorCode        string          `json:"error_code"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: body}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	for _, m := range []string{eb.Message, eb.Msg, eb.ErrorDescription, eb.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}

	var code string
	if json.Unmarshal(eb.Code, &code) == nil && code != "" {
		apiErr.Code = code
	} else if eb.ErrorCode != "" {
		apiErr.Code = eb.ErrorCode
	} else if eb.Error != "" && eb.Error != apiErr.Message {
		apiErr.Code = eb.Error
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
