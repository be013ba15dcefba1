package fallback

import (
	"strings"

	"github.com/ndhuy/tienoi/internal/model"
)

// Keyword sets for transaction direction. The two sets are disjoint and
// income is checked first: when both directions co-occur ("bán cơm" vs
// "mua bán"), income wins. That precedence is deliberate, not a tie-break.
var (
	incomeKeywords = []string{
		"nhận", "lương", "thưởng", "bán", "thu nhập",
		"trúng", "lãi", "hoàn tiền", "được cho",
	}
	expenseKeywords = []string{
		"mua", "trả", "chi", "tiêu", "ăn", "uống",
		"đóng", "nạp", "thuê", "sắm", "đổ xăng",
	}
)

const typeMatchBonus = 0.1

// classifyType decides the transaction direction from keyword presence.
// Expense is the default when neither set matches, with no bonus.
func classifyType(normalized string) (model.CategoryType, float64) {
	for _, kw := range incomeKeywords {
		if strings.Contains(normalized, kw) {
			return model.CategoryTypeIncome, typeMatchBonus
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(normalized, kw) {
			return model.CategoryTypeExpense, typeMatchBonus
		}
	}
	return model.CategoryTypeExpense, 0
}
