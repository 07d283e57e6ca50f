package errs

import (
	"context"
	"errors"
	"fmt"
)

// ServiceErrorKind classifies why a collaborator call failed.
type ServiceErrorKind string

const (
	// KindTimeout means the call did not finish before its deadline. Usually transient.
	KindTimeout ServiceErrorKind = "timeout"
	// KindUnavailable means the collaborator could not be reached or answered with a server fault.
	KindUnavailable ServiceErrorKind = "unavailable"
	// KindRejected means the collaborator answered and refused the request. Not worth retrying.
	KindRejected ServiceErrorKind = "rejected"
)

var (
	ErrExternalService    = errors.New("external service failed")
	ErrServiceTimeout     = errors.New("external service timed out")
	ErrServiceUnavailable = errors.New("external service unavailable")
	ErrServiceRejected    = errors.New("external service rejected request")
)

// ExternalServiceError wraps a failed call to a collaborator such as the geocoder
// or the payment gateway. It matches ErrExternalService, the sentinel of its kind,
// and its cause under errors.Is.
type ExternalServiceError struct {
	Service string
	Kind    ServiceErrorKind
	Cause   error
}

func NewExternalServiceError(service string, kind ServiceErrorKind, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Kind: kind, Cause: cause}
}

// ClassifyContextError turns a context failure into a timeout error for service.
// Other errors are reported as unavailable. Nil stays nil.
func ClassifyContextError(service string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ExternalServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewExternalServiceError(service, KindTimeout, err)
	}
	return NewExternalServiceError(service, KindUnavailable, err)
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s) (cause: %v)", ErrExternalService, e.Service, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrExternalService, e.Service, e.Kind)
}

func (e *ExternalServiceError) Unwrap() []error {
	wrapped := []error{ErrExternalService, e.kindSentinel()}
	if e.Cause != nil {
		wrapped = append(wrapped, e.Cause)
	}
	return wrapped
}

func (e *ExternalServiceError) kindSentinel() error {
	switch e.Kind {
	case KindTimeout:
		return ErrServiceTimeout
	case KindRejected:
		return ErrServiceRejected
	case KindUnavailable:
		return ErrServiceUnavailable
	}
	return ErrServiceUnavailable
}
