// Package aiserr contains the errors returned by the cluster clients along with the logic which maps responses to them.
package aiserr

import (
	"errors"
	"fmt"
)

// ServiceError is returned when the cluster rejects a request.
type ServiceError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the message returned by the cluster, or the status text if there wasn't one.
	Message string

	Method string
	Path   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("'%s' request to '%s' failed with status code %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Kind indicates which resource could not be found.
type Kind int

const (
	// BucketKind means the bucket does not exist.
	BucketKind Kind = iota

	// ObjectKind means the bucket exists (or could not be determined not to), but the object does not.
	ObjectKind
)

// String returns a human readable representation of the kind.
func (k Kind) String() string {
	if k == BucketKind {
		return "bucket"
	}

	return "object"
}

// NotFoundError is returned when the bucket or object referenced by a request does not exist.
//
// NOTE: The wrapped 'ServiceError' means 'errors.As' also succeeds for a '*ServiceError'.
type NotFoundError struct {
	Kind   Kind
	Bucket string
	Object string
	err    *ServiceError
}

// NewNotFoundError returns a 'NotFoundError' of the given kind, wrapping the given service error.
func NewNotFoundError(kind Kind, bucket, object string, err *ServiceError) *NotFoundError {
	return &NotFoundError{Kind: kind, Bucket: bucket, Object: object, err: err}
}

func (e *NotFoundError) Error() string {
	if e.Kind == BucketKind {
		return fmt.Sprintf("bucket '%s' not found: %s", e.Bucket, e.err)
	}

	return fmt.Sprintf("object '%s' in bucket '%s' not found: %s", e.Object, e.Bucket, e.err)
}

func (e *NotFoundError) Unwrap() error {
	return e.err
}

// IsNotFound returns a boolean indicating whether the given error is a 'NotFoundError' of any kind.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsBucketNotFound returns a boolean indicating whether the given error indicates a bucket does not exist.
func IsBucketNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound) && notFound.Kind == BucketKind
}

// IsObjectNotFound returns a boolean indicating whether the given error indicates an object does not exist.
func IsObjectNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound) && notFound.Kind == ObjectKind
}

// IsServiceError returns a boolean indicating whether the given error was returned by the cluster, this includes the
// 'NotFoundError'.
func IsServiceError(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr)
}

// StatusCode returns the status code of the response which caused the given error, or zero if there wasn't one.
func StatusCode(err error) int {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Status
	}

	return 0
}
