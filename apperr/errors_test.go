package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	base := New(ValidationError, "insufficient units")
	wrapped := fmt.Errorf("submit orders: %w", base)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, ValidationError, kind)
}

func TestErrorIs(t *testing.T) {
	err := Newf(PhaseError, "orders already submitted")
	require.True(t, errors.Is(err, New(PhaseError, "")))
	require.False(t, errors.Is(err, New(Bug, "")))
}

func TestWithContext(t *testing.T) {
	err := New(ValidationError, "insufficient units").WithContext("x", 2, "y", 2, "total", 13)
	require.Equal(t, 2, err.Context["x"])
	require.Equal(t, 13, err.Context["total"])
}

func TestBugfPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		e, ok := r.(*Error)
		require.True(t, ok)
		require.Equal(t, Bug, e.Kind)
	}()
	Bugf("source debit went negative at (%d,%d)", 1, 2)
}
