// Package intent classifies an incoming chat message as small talk, a
// transaction description, or unknown. It is a pure function of the raw
// message: no categories, no conversation history, no clock.
package intent

import (
	"regexp"
	"strings"

	"github.com/ndhuy/tienoi/internal/model"
)

// Small-talk keyword families. Each family counts once no matter how many
// of its words appear.
var (
	greetingKeywords = []string{"chào", "hello", "xin chào", "alo", "hế lô"}
	questionKeywords = []string{"?", "bao nhiêu", "thế nào", "làm sao", "là gì", "giúp mình"}
	thanksKeywords   = []string{"cảm ơn", "cám ơn", "thanks", "thank you"}
	goodbyeKeywords  = []string{"tạm biệt", "bye", "hẹn gặp lại", "ngủ ngon"}
)

// Transaction keyword families.
var (
	transactionVerbs = []string{
		"mua", "ăn", "uống", "trả", "chi", "tiêu", "nhận",
		"bán", "đóng", "nạp", "lương", "thưởng", "thuê",
	}
	moneyUnitKeywords = []string{
		"triệu", "tỷ", "nghìn", "ngàn", "đồng", "vnd",
	}
	spendingKeywords = []string{
		"phở", "cà phê", "cafe", "trà sữa", "cơm", "xăng", "taxi", "grab",
		"điện", "nước", "quán", "siêu thị", "thuốc",
	}
	timeKeywords = []string{
		"hôm nay", "hôm qua", "sáng", "trưa", "chiều", "tối", "tuần", "tháng",
	}

	// currencyUnitRe matches an amount written directly with a unit token,
	// the strongest single transaction signal.
	currencyUnitRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(triệu|tr|tỷ|nghìn|ngàn|k|đồng|vnd|đ)`)

	digitRe = regexp.MustCompile(`\d`)
)

const shortMessageRunes = 15

// Classify decides the intent of a raw message. Empty or whitespace-only
// input short-circuits to unknown with zero confidence.
func Classify(message string) model.IntentClassification {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return model.IntentClassification{Intent: model.IntentUnknown, Confidence: 0}
	}

	lower := strings.ToLower(trimmed)
	smallTalk := smallTalkScore(lower)
	transaction, hasDigit := transactionScore(lower)

	// The evaluation order below is the tie-break contract: a decisive
	// transaction score beats small talk, small talk beats the weak
	// digit-presence rescue, and everything else is unknown.
	switch {
	case transaction > smallTalk && transaction > 0.3:
		return model.IntentClassification{
			Intent:     model.IntentCreateTransaction,
			Confidence: min(transaction, 0.95),
		}
	case smallTalk > 0.5:
		return model.IntentClassification{
			Intent:     model.IntentSmallTalk,
			Confidence: min(smallTalk, 0.9),
		}
	case hasDigit && transaction > 0.2:
		return model.IntentClassification{
			Intent:     model.IntentCreateTransaction,
			Confidence: 0.7,
		}
	default:
		return model.IntentClassification{Intent: model.IntentUnknown, Confidence: 0.5}
	}
}

func smallTalkScore(lower string) float64 {
	var score float64
	if containsAny(lower, greetingKeywords) {
		score += 0.4
	}
	if containsAny(lower, questionKeywords) {
		score += 0.3
	}
	if containsAny(lower, thanksKeywords) {
		score += 0.3
	}
	if containsAny(lower, goodbyeKeywords) {
		score += 0.3
	}
	if len([]rune(lower)) < shortMessageRunes && !digitRe.MatchString(lower) {
		score += 0.2
	}
	return min(score, 1.0)
}

func transactionScore(lower string) (float64, bool) {
	var score float64
	families := 0

	if containsAny(lower, transactionVerbs) {
		score += 0.25
		families++
	}
	if containsAny(lower, moneyUnitKeywords) {
		score += 0.3
		families++
	}
	if containsAny(lower, spendingKeywords) {
		score += 0.2
		families++
	}
	if containsAny(lower, timeKeywords) {
		score += 0.15
		families++
	}

	hasDigit := digitRe.MatchString(lower)
	if hasDigit {
		score += 0.3
		families++
	}
	if currencyUnitRe.MatchString(lower) {
		score += 0.4
		families++
	}

	// Several independent signals agreeing is worth more than their sum.
	if families >= 3 {
		score += 0.2
	}
	return min(score, 1.0), hasDigit
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
