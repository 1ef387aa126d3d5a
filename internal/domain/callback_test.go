package domain_test

import (
	"testing"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCorrelation(t *testing.T) {
	tests := []struct {
		name   string
		params domain.CallbackParams
		want   int64
		found  bool
	}{
		{"primary field", domain.CallbackParams{OrderRef: "42", Echo1: "7"}, 42, true},
		{"primary overwritten by customer text", domain.CallbackParams{OrderRef: "John Smith", Echo1: "42"}, 42, true},
		{"primary missing", domain.CallbackParams{Echo1: " 42 "}, 42, true},
		{"falls through to second echo", domain.CallbackParams{OrderRef: "x", Echo1: "-3", Echo2: "42"}, 42, true},
		{"zero is not an id", domain.CallbackParams{OrderRef: "0"}, 0, false},
		{"nothing usable", domain.CallbackParams{OrderRef: "abc", Echo1: "", Echo2: "1.5"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ResolveCorrelation(tt.params, domain.DefaultCorrelation)

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallbackParams_ParsedAmount(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		amount, err := domain.CallbackParams{Amount: "107.25"}.ParsedAmount()

		require.NoError(t, err)
		assert.True(t, dec("107.25").Equal(amount))
	})

	t.Run("comma separator", func(t *testing.T) {
		amount, err := domain.CallbackParams{Amount: "107,25"}.ParsedAmount()

		require.NoError(t, err)
		assert.True(t, dec("107.25").Equal(amount))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := domain.CallbackParams{Amount: "lots"}.ParsedAmount()

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestCallbackParams_Approved(t *testing.T) {
	assert.True(t, domain.CallbackParams{ResultCode: "00"}.Approved("00"))
	assert.False(t, domain.CallbackParams{ResultCode: "05"}.Approved("00"))
	assert.False(t, domain.CallbackParams{}.Approved("00"))
}
