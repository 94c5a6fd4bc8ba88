package registry

import (
	"encoding/json"
	"fmt"
)

// ResultType is the tag of a Result.
type ResultType string

const (
	ResultOk  ResultType = "ok"
	ResultErr ResultType = "err"
)

// Result is the tagged outcome of a registry operation as seen by external callers.
// The ok variant carries a boolean payload (true for state-mutating operations),
// the err variant carries an ErrorCode.
//
// Callers must check IsOk (or use Value, which returns the error) before relying
// on the payload.
type Result struct {
	ok    bool
	value bool
	code  ErrorCode
}

// Ok returns a success result carrying value.
func Ok(value bool) Result {
	return Result{ok: true, value: value}
}

// Err returns a failure result carrying code.
func Err(code ErrorCode) Result {
	return Result{code: code}
}

// ResultOf converts the error returned by a state-mutating operation into a Result.
// A nil error becomes Ok(true). The second return value is false if err is not a
// registry error, in which case the returned Result must not be used.
func ResultOf(err error) (Result, bool) {
	if err == nil {
		return Ok(true), true
	}

	code, ok := CodeOf(err)
	if !ok {
		return Result{}, false
	}
	return Err(code), true
}

// Type returns the tag of the result.
func (r Result) Type() ResultType {
	if r.ok {
		return ResultOk
	}
	return ResultErr
}

// IsOk reports whether the result is the ok variant.
func (r Result) IsOk() bool {
	return r.ok
}

// Value returns the success payload, or the sentinel error for the err variant.
func (r Result) Value() (bool, error) {
	if !r.ok {
		return false, r.code.Err()
	}
	return r.value, nil
}

// Code returns the error code, or 0 for the ok variant.
func (r Result) Code() ErrorCode {
	if r.ok {
		return 0
	}
	return r.code
}

// Err returns the sentinel error for the err variant and nil for ok.
func (r Result) Err() error {
	if r.ok {
		return nil
	}
	return r.code.Err()
}

func (r Result) String() string {
	if r.ok {
		return fmt.Sprintf("(ok %t)", r.value)
	}
	return fmt.Sprintf("(err u%d)", r.code)
}

type resultJSON struct {
	Type  ResultType      `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the result as {"type":"ok","value":<bool>} or
// {"type":"err","value":<code>}.
func (r Result) MarshalJSON() ([]byte, error) {
	var value any = r.value
	if !r.ok {
		if !r.code.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCode, r.code)
		}
		value = uint32(r.code)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{Type: r.Type(), Value: raw})
}

// UnmarshalJSON decodes the encoding produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire resultJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch wire.Type {
	case ResultOk:
		var value bool
		if err := json.Unmarshal(wire.Value, &value); err != nil {
			return fmt.Errorf("invalid ok payload: %w", err)
		}
		*r = Ok(value)
	case ResultErr:
		var code uint32
		if err := json.Unmarshal(wire.Value, &code); err != nil {
			return fmt.Errorf("invalid err payload: %w", err)
		}
		if !ErrorCode(code).Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownCode, code)
		}
		*r = Err(ErrorCode(code))
	default:
		return fmt.Errorf("invalid result type %q", wire.Type)
	}
	return nil
}
