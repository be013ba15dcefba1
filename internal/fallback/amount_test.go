package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAmount float64
		wantBonus  float64
		wantOK     bool
	}{
		{
			name:       "k suffix",
			input:      "ăn phở 50k",
			wantAmount: 50_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "decimal triệu",
			input:      "nhận lương 1.5 triệu",
			wantAmount: 1_500_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "tr shorthand",
			input:      "lương 15tr",
			wantAmount: 15_000_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "tỷ",
			input:      "bán nhà 2 tỷ",
			wantAmount: 2_000_000_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "nghìn",
			input:      "gửi xe 5 nghìn",
			wantAmount: 5_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "đồng keeps literal value",
			input:      "mua kẹo 2000 đồng",
			wantAmount: 2_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "vnd unit",
			input:      "thanh toán 30000 vnd",
			wantAmount: 30_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "triệu wins over tr prefix",
			input:      "1.5 triệu",
			wantAmount: 1_500_000,
			wantBonus:  unitMatchBonus,
			wantOK:     true,
		},
		{
			name:       "bare number under 1000 scales up",
			input:      "ăn sáng 100",
			wantAmount: 100_000,
			wantBonus:  bareNumberBonus,
			wantOK:     true,
		},
		{
			name:       "bare number at 1000 kept as-is",
			input:      "chuyển 1000",
			wantAmount: 1_000,
			wantBonus:  bareNumberBonus,
			wantOK:     true,
		},
		{
			name:       "large bare number kept as-is",
			input:      "đóng tiền nhà 4500000",
			wantAmount: 4_500_000,
			wantBonus:  bareNumberBonus,
			wantOK:     true,
		},
		{
			name:   "no digits fails",
			input:  "ăn phở hôm nay",
			wantOK: false,
		},
		{
			name:   "empty fails",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractAmount(normalize(tt.input))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantAmount, got.value, 0.001)
				assert.InDelta(t, tt.wantBonus, got.bonus, 0.001)
			}
		})
	}
}

func TestExtractAmount_UnitOrderIsStable(t *testing.T) {
	// "tr" must never shadow "triệu"; both map to the same multiplier
	// today, but the captured literal differs if the shorter token wins.
	got, ok := extractAmount("2.5 triệu")
	assert.True(t, ok)
	assert.InDelta(t, 2_500_000, got.value, 0.001)
}
