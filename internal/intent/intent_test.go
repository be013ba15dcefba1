package intent

import (
	"testing"

	"github.com/ndhuy/tienoi/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantIntent model.Intent
		minConf    float64
		maxConf    float64
	}{
		{
			name:       "greeting",
			message:    "Chào bạn",
			wantIntent: model.IntentSmallTalk,
			minConf:    0.5,
			maxConf:    0.9,
		},
		{
			name:       "thanks and goodbye",
			message:    "Cảm ơn, tạm biệt nhé",
			wantIntent: model.IntentSmallTalk,
			minConf:    0.5,
			maxConf:    0.9,
		},
		{
			name:       "greeting with question",
			message:    "Chào bạn, bạn dùng thế nào?",
			wantIntent: model.IntentSmallTalk,
			minConf:    0.5,
			maxConf:    0.9,
		},
		{
			name:       "classic expense message",
			message:    "Ăn phở 50k hôm nay",
			wantIntent: model.IntentCreateTransaction,
			minConf:    0.7,
			maxConf:    0.95,
		},
		{
			name:       "income message",
			message:    "Nhận lương 15 triệu",
			wantIntent: model.IntentCreateTransaction,
			minConf:    0.7,
			maxConf:    0.95,
		},
		{
			name:       "amount only still transactional",
			message:    "50k trà sữa",
			wantIntent: model.IntentCreateTransaction,
			minConf:    0.5,
			maxConf:    0.95,
		},
		{
			name:       "digit rescue path",
			message:    "hết 70 rồi",
			wantIntent: model.IntentCreateTransaction,
			minConf:    0.7,
			maxConf:    0.7,
		},
		{
			name:       "gibberish",
			message:    "xyz abc def ghi jkl",
			wantIntent: model.IntentUnknown,
			minConf:    0.5,
			maxConf:    0.5,
		},
		{
			name:       "empty",
			message:    "",
			wantIntent: model.IntentUnknown,
			minConf:    0,
			maxConf:    0,
		},
		{
			name:       "whitespace only",
			message:    "   \n  ",
			wantIntent: model.IntentUnknown,
			minConf:    0,
			maxConf:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			assert.Equal(t, tt.wantIntent, got.Intent, "message %q", tt.message)
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf)
			assert.LessOrEqual(t, got.Confidence, tt.maxConf)
		})
	}
}

func TestClassify_TransactionBeatsSmallTalkOnTie(t *testing.T) {
	// Carries a greeting and a priced item: the ordered decision procedure
	// checks the transaction branch first.
	got := Classify("chào bạn, ăn phở 50k")
	assert.Equal(t, model.IntentCreateTransaction, got.Intent)
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	messages := []string{
		"Chào bạn", "Ăn phở 50k hôm nay", "cảm ơn nhiều lắm luôn á",
		"1.5 triệu tiền điện tháng này", "ờ", "?",
	}
	for _, msg := range messages {
		got := Classify(msg)
		assert.GreaterOrEqual(t, got.Confidence, 0.0, "message %q", msg)
		assert.LessOrEqual(t, got.Confidence, 1.0, "message %q", msg)
	}
}
