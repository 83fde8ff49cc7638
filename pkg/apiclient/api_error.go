package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrBackend = errors.New("activities api")

// FallbackMessage is shown to the user when a failed call carries no detail.
const FallbackMessage = "An error occurred"

// ErrorResponse is the JSON the backend sends with a non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: (HTTP Status: %d)", ErrBackend, e.StatusCode)
	}

	return fmt.Sprintf("%s: (HTTP Status: %d)- %s", ErrBackend, e.StatusCode, e.Detail)
}

func (e *APIError) Is(target error) bool {
	return target == ErrBackend
}

// ToErrorFromResponse builds the APIError for a failed response. A body that
// isn't JSON, or has no detail, leaves Detail empty.
func ToErrorFromResponse(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err == nil {
		apiErr.Detail = errorResponse.Detail
	}

	return apiErr
}

// UserMessage is the text the message area shows for a failed mutation.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	return FallbackMessage
}
