package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why an outbound call failed.
type Kind string

const (
	KindTimeout         Kind = "timeout"
	KindUnreachable     Kind = "unreachable"
	KindInvalidResponse Kind = "invalid_response"
)

// Failure is the typed error returned by every external adapter.
// Adapters never retry; the caller decides what a failure means.
type Failure struct {
	Op   string // e.g. "terminology.map"
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Kind)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify wraps a transport-level error as Timeout or Unreachable.
func Classify(op string, err error) *Failure {
	kind := KindUnreachable

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = KindTimeout
	}

	return &Failure{Op: op, Kind: kind, Err: err}
}

// InvalidResponse marks a reply the adapter could not accept
// (non-2xx status, malformed body).
func InvalidResponse(op string, err error) *Failure {
	return &Failure{Op: op, Kind: KindInvalidResponse, Err: err}
}

// AsFailure extracts a *Failure from an error chain, if present.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
