package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffective(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount float64
		want     string
	}{
		{"no discount", "100", 0, "100"},
		{"negative discount treated as none", "100", -5, "100"},
		{"ten percent", "50", 10, "45"},
		{"rounds half up", "33.33", 12.5, "29.16"}, // 33.33 × 0.875 = 29.16375
		{"clamped above hundred", "80", 150, "0"},
		{"full discount", "80", 100, "0"},
		{"zero price", "0", 50, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Effective(decimal.RequireFromString(tt.price), tt.discount)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestEffectiveRejectsNegativePrice(t *testing.T) {
	_, err := Effective(decimal.NewFromInt(-1), 0)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestSubtotal(t *testing.T) {
	// 100 × 2 无折扣 = 200
	got, err := Subtotal(decimal.NewFromInt(100), 0, 2)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(200)))

	// 50 × 1，10% 折扣 = 45
	got, err = Subtotal(decimal.NewFromInt(50), 10, 1)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(45)))
}

func TestSubtotalPropagatesValidation(t *testing.T) {
	_, err := Subtotal(decimal.NewFromInt(-10), 0, 1)
	assert.ErrorIs(t, err, ErrNegativePrice)
}
