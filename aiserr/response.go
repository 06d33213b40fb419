package aiserr

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/httptools"
)

// FromResponse converts an error returned by 'httptools' into a 'ServiceError' or 'NotFoundError' when it was caused by
// an unexpected response, other errors are passed to 'HandleError'.
//
// NOTE: An empty object name means the request referenced only the bucket, a 404 is then always a bucket not found.
func FromResponse(err error, bck aisval.Bck, object string) error {
	var unexpected *httptools.UnexpectedStatusCodeError
	if !errors.As(err, &unexpected) {
		return HandleError(err)
	}

	serviceErr := NewServiceError(unexpected.Status, string(unexpected.Method), string(unexpected.Endpoint),
		unexpected.Body)

	if serviceErr.Status != http.StatusNotFound {
		return serviceErr
	}

	kind := ObjectKind
	if object == "" || isBucketMessage(serviceErr.Message) {
		kind = BucketKind
	}

	return NewNotFoundError(kind, bck.String(), object, serviceErr)
}

// NewServiceError builds a 'ServiceError' from the given response, the message is taken from the error payload, the raw
// body, or the status text in that order.
func NewServiceError(status int, method, path string, body []byte) *ServiceError {
	serviceErr := &ServiceError{Status: status, Method: method, Path: path}

	var payload aisval.Error
	if err := jsoniter.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		serviceErr.Message = payload.Message
		return serviceErr
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) != 0 {
		serviceErr.Message = string(trimmed)
		return serviceErr
	}

	serviceErr.Message = http.StatusText(status)

	return serviceErr
}

// isBucketMessage returns a boolean indicating whether the message describes a missing bucket.
func isBucketMessage(message string) bool {
	message = strings.ToLower(message)

	return strings.HasPrefix(message, "bucket ") &&
		(strings.Contains(message, "does not exist") || strings.Contains(message, "not found"))
}
