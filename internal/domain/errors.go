package domain

import "fmt"

// MalformedError reports an upstream payload that violates the expected
// schema: unparsable JSON, a missing features array, or a wrongly typed
// attribute.
type MalformedError struct {
	Cause error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Cause)
}

func (e *MalformedError) Unwrap() error { return e.Cause }

// UnknownCategoryError reports a categorical dn code outside the known
// 2-7 severity scale.
type UnknownCategoryError struct {
	Code int
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown categorical risk code %d", e.Code)
}

// MissingFieldError reports a required record or field absent from an
// upstream payload, or present but unparsable.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// FetchStage names the phase of a fetch that failed.
type FetchStage string

const (
	StageNetwork FetchStage = "network"
	StageDecode  FetchStage = "decode"
)

// FetchError wraps a failure from one upstream fetch. A network-stage error
// means the request never produced a decodable body; a decode-stage error
// wraps one of the typed decode errors above. A FetchError is never
// collapsed into a default value: "no risk" is a successful decode, "fetch
// failed" is this.
type FetchError struct {
	Slot  string // "categorical", "tornado", "wind", "hail", or "forecast"
	Stage FetchStage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch: %s: %v", e.Slot, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NetworkError tags a transport or HTTP failure for the given slot.
func NetworkError(slot string, err error) *FetchError {
	return &FetchError{Slot: slot, Stage: StageNetwork, Err: err}
}

// DecodeError tags a payload decode failure for the given slot.
func DecodeError(slot string, err error) *FetchError {
	return &FetchError{Slot: slot, Stage: StageDecode, Err: err}
}
