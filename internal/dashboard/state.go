package dashboard

import (
	"encoding/json"
	"time"
)

// SlotStatus is the lifecycle position of one fetch slot.
type SlotStatus int

const (
	StatusPending SlotStatus = iota
	StatusResolved
	StatusFailed
)

func (s SlotStatus) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// FetchState tracks one fetch's lifecycle within an activation. A slot is
// created pending and transitions exactly once, to resolved or failed; a
// refresh creates fresh slots instead of reusing terminal ones. The zero
// value is a pending slot.
type FetchState[T any] struct {
	Status     SlotStatus
	Value      T     // valid only when Status is StatusResolved
	Err        error // set only when Status is StatusFailed
	ResolvedAt time.Time
}

// Resolved builds a terminal resolved slot.
func Resolved[T any](value T, at time.Time) FetchState[T] {
	return FetchState[T]{Status: StatusResolved, Value: value, ResolvedAt: at}
}

// Failed builds a terminal failed slot. The error is kept as-is so callers
// can distinguish network failures from decode failures.
func Failed[T any](err error, at time.Time) FetchState[T] {
	return FetchState[T]{Status: StatusFailed, Err: err, ResolvedAt: at}
}

// Terminal reports whether the slot has left the pending state.
func (s FetchState[T]) Terminal() bool {
	return s.Status != StatusPending
}

// MarshalJSON emits the slot in a status-tagged form. A failed slot carries
// the error text, never a default value; the consumer renders "unavailable",
// not zero risk.
func (s FetchState[T]) MarshalJSON() ([]byte, error) {
	switch s.Status {
	case StatusResolved:
		return json.Marshal(struct {
			Status     string    `json:"status"`
			Value      T         `json:"value"`
			ResolvedAt time.Time `json:"resolved_at"`
		}{Status: s.Status.String(), Value: s.Value, ResolvedAt: s.ResolvedAt})
	case StatusFailed:
		return json.Marshal(struct {
			Status   string    `json:"status"`
			Error    string    `json:"error"`
			FailedAt time.Time `json:"failed_at"`
		}{Status: s.Status.String(), Error: s.Err.Error(), FailedAt: s.ResolvedAt})
	default:
		return json.Marshal(struct {
			Status string `json:"status"`
		}{Status: s.Status.String()})
	}
}
