package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/recetario/internal/store"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"-3.5", -3.5, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"NaN", 0, false},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"infinity", 0, false},
		{"-inf", 0, false},
		{"1e400", math.Inf(1), true},
		{"0x10", 16, true},
		{" 0X1f ", 31, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"0x", 0, false},
		{"-0x1", 0, false},
		{"0x+1", 0, false},
		{"0xg", 0, false},
		{"0b102", 0, false},
		{"1_000", 0, false},
		{"0x1p3", 0, false},
		{"01ARZ3NDEKTSV4RRFFQ69G5FAV", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveUserRef(t *testing.T) {
	id := store.NewID()

	ref, err := ResolveUserRef("7")
	require.NoError(t, err)
	assert.Equal(t, RefExternal, ref.Kind)
	assert.Equal(t, float64(7), ref.External)

	ref, err = ResolveUserRef(id)
	require.NoError(t, err)
	assert.Equal(t, RefStore, ref.Kind)
	assert.Equal(t, id, ref.StoreID)

	ref, err = ResolveUserRef("0x1")
	require.NoError(t, err)
	assert.Equal(t, RefExternal, ref.Kind)
	assert.Equal(t, float64(1), ref.External)
	assert.True(t, ref.matchable())

	ref, err = ResolveUserRef("Infinity")
	require.NoError(t, err)
	assert.False(t, ref.matchable())

	_, err = ResolveUserRef("not-an-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, float64(0), CoerceNumber(nil))
	assert.Equal(t, float64(1), CoerceNumber(true))
	assert.Equal(t, float64(3), CoerceNumber(float64(3)))
	assert.Equal(t, float64(12), CoerceNumber("12"))
	assert.Equal(t, float64(255), CoerceNumber("0xff"))
	assert.True(t, math.IsInf(CoerceNumber("Infinity"), 1))
	assert.Equal(t, float64(0), CoerceNumber(""))
	assert.True(t, math.IsNaN(CoerceNumber("doce")))
	assert.True(t, math.IsNaN(CoerceNumber(map[string]any{})))
}

func TestErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := storeFailure("find user", cause)

	assert.True(t, errors.Is(err, ErrStoreFailure))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "find user", svcErr.Message)
}
