package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeLaudoNotFound, "laudo 42 not found")
	require.NotNil(t, err)
	assert.Equal(t, CodeLaudoNotFound, err.Code)
	assert.Equal(t, "[LAUDO_001] laudo 42 not found", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestErrorWithDetail(t *testing.T) {
	err := NotFound("test record not found").WithDetail("id=abc")
	assert.Equal(t, "[COMMON_005] test record not found: id=abc", err.Error())

	// WithDetail must not mutate the receiver.
	base := NotFound("base")
	_ = base.WithDetail("extra")
	assert.Empty(t, base.Detail)
}

func TestWithDetailNilReceiver(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("x"))
	assert.Nil(t, err.WithCause(stderrors.New("y")))
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeDatabaseError, "query failed"))
	})

	t.Run("wraps and preserves chain", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(cause, CodeDatabaseError, "failed to query laudo")
		require.NotNil(t, err)
		assert.Equal(t, CodeDatabaseError, err.Code)
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("unknown code inherits wrapped code", func(t *testing.T) {
		inner := New(CodeTestNotFound, "gone")
		err := Wrap(inner, CodeUnknown, "while editing test")
		assert.Equal(t, CodeTestNotFound, err.Code)
	})
}

func TestIsCode(t *testing.T) {
	inner := New(CodeLaudoNotFound, "missing")
	wrapped := fmt.Errorf("service layer: %w", inner)

	assert.True(t, IsCode(wrapped, CodeLaudoNotFound))
	assert.False(t, IsCode(wrapped, CodeDatabaseError))
	assert.False(t, IsCode(nil, CodeLaudoNotFound))
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", NotFound("x"), true},
		{"laudo not found", New(CodeLaudoNotFound, "x"), true},
		{"test not found", New(CodeTestNotFound, "x"), true},
		{"material not found", New(CodeMaterialNotFound, "x"), true},
		{"validation", Validation("x"), false},
		{"plain error", stderrors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeValidation, GetCode(Validation("empty batch")))

	wrapped := fmt.Errorf("outer: %w", New(CodeEmptyTestBatch, "no inputs"))
	assert.Equal(t, CodeEmptyTestBatch, GetCode(wrapped))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(CodeLaudoNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatusForCode(CodeEmptyTestBatch))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "LAUDO", ModuleForCode(CodeLaudoNotFound))
	assert.Equal(t, "SPEC", ModuleForCode(ErrCodeRuleInvalid))
	assert.Equal(t, "COMMON", ModuleForCode(CodeValidation))
}

func TestClientServerSplit(t *testing.T) {
	assert.True(t, IsClientError(CodeLaudoNotFound))
	assert.False(t, IsServerError(CodeLaudoNotFound))
	assert.True(t, IsServerError(CodeDatabaseError))
}
