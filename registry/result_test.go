package registry

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Encoding(t *testing.T) {
	tests := []struct {
		result Result
		json   string
	}{
		{Ok(true), `{"type":"ok","value":true}`},
		{Err(CodeDuplicateRegistration), `{"type":"err","value":1}`},
		{Err(CodeUnauthorized), `{"type":"err","value":403}`},
		{Err(CodeNotFound), `{"type":"err","value":404}`},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			encoded, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(encoded))

			var decoded Result
			require.NoError(t, json.Unmarshal([]byte(tt.json), &decoded))
			assert.Equal(t, tt.result, decoded)
		})
	}
}

func TestResult_DecodeRejectsUnknown(t *testing.T) {
	for _, input := range []string{
		`{"type":"err","value":500}`,
		`{"type":"maybe","value":true}`,
		`{"type":"ok","value":1}`,
		`{"type":"err","value":"403"}`,
	} {
		var r Result
		assert.Error(t, json.Unmarshal([]byte(input), &r), input)
	}
}

func TestResult_EncodeRejectsInvalidCode(t *testing.T) {
	_, err := json.Marshal(Result{})
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestResult_Accessors(t *testing.T) {
	ok := Ok(true)
	assert.True(t, ok.IsOk())
	assert.Equal(t, ResultOk, ok.Type())
	assert.Equal(t, ErrorCode(0), ok.Code())
	assert.NoError(t, ok.Err())
	value, err := ok.Value()
	require.NoError(t, err)
	assert.True(t, value)

	failed := Err(CodeNotFound)
	assert.False(t, failed.IsOk())
	assert.Equal(t, ResultErr, failed.Type())
	assert.Equal(t, CodeNotFound, failed.Code())
	assert.ErrorIs(t, failed.Err(), ErrNotFound)
	_, err = failed.Value()
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, "(ok true)", ok.String())
	assert.Equal(t, "(err u404)", failed.String())
}

func TestResultOf(t *testing.T) {
	r, ok := ResultOf(nil)
	require.True(t, ok)
	assert.Equal(t, Ok(true), r)

	r, ok = ResultOf(fmt.Errorf("%w: someone", ErrUnauthorized))
	require.True(t, ok)
	assert.Equal(t, Err(CodeUnauthorized), r)

	_, ok = ResultOf(assert.AnError)
	assert.False(t, ok)
}

func TestResultOf_Operations(t *testing.T) {
	reg := newTestRegistry()

	r, _ := ResultOf(reg.RegisterInventor(inventor1, "John Doe", "PhD"))
	assert.Equal(t, Ok(true), r)

	r, _ = ResultOf(reg.RegisterInventor(inventor1, "John Doe Again", "Other"))
	assert.Equal(t, Err(CodeDuplicateRegistration), r)

	r, _ = ResultOf(reg.VerifyInventor(inventor2, inventor1))
	assert.Equal(t, Err(CodeUnauthorized), r)

	r, _ = ResultOf(reg.VerifyInventor(admin, inventor2))
	assert.Equal(t, Err(CodeNotFound), r)

	r, _ = ResultOf(reg.TransferAdmin(admin, inventor1))
	assert.Equal(t, Ok(true), r)
}
