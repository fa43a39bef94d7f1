package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedCost(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name                             string
		stock, cost, entryQty, entryCost string
		want                             string
	}{
		{"promedia", "10", "20", "10", "30", "25"},
		{"sin stock previo", "0", "0", "5", "12.5", "12.5"},
		{"stock negativo se trata como cero", "-3", "99", "4", "10", "10"},
		{"redondeo a 4 decimales", "3", "10", "1", "11", "10.25"},
		{"tres tercios", "1", "1", "2", "2", "1.6667"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedCost(d(tt.stock), d(tt.cost), d(tt.entryQty), d(tt.entryCost))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestApplyDelta(t *testing.T) {
	next, ok := ApplyDelta(decimal.NewFromInt(5), decimal.NewFromInt(-5))
	assert.True(t, ok)
	assert.True(t, next.IsZero())

	_, ok = ApplyDelta(decimal.NewFromInt(5), decimal.RequireFromString("-5.001"))
	assert.False(t, ok)
}
