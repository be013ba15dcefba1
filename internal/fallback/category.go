package fallback

import (
	"strings"

	"github.com/ndhuy/tienoi/internal/model"
)

// categoryKeywords maps common lowercased category names to words that
// imply them. A keyword hit scores below a verbatim name match so
// "ăn phở" resolves to "Ăn uống" but an explicit "ăn uống" in the
// message still wins over any keyword.
var categoryKeywords = map[string][]string{
	"ăn uống": {
		"phở", "bún", "cơm", "cà phê", "cafe", "trà sữa",
		"quán", "nhà hàng", "ăn", "uống", "nhậu",
	},
	"di chuyển": {
		"xăng", "grab", "taxi", "xe ôm", "xe buýt", "gửi xe", "vé xe",
	},
	"hóa đơn": {
		"điện", "nước", "internet", "wifi", "tiền nhà", "thuê nhà", "điện thoại",
	},
	"mua sắm": {
		"quần áo", "giày", "shopee", "lazada", "tiki", "siêu thị",
	},
	"giải trí": {
		"phim", "game", "karaoke", "du lịch",
	},
	"sức khỏe": {
		"thuốc", "khám", "bệnh viện", "gym",
	},
	"giáo dục": {
		"học phí", "sách", "khóa học",
	},
	"lương": {
		"lương", "thưởng", "thu nhập",
	},
}

// Category scoring levels and contributions.
const (
	verbatimNameScore  = 1.0
	keywordScore       = 0.8
	categoryMatchBonus = 0.2
	guessPenalty       = 0.2
)

// categoryMatch is the outcome of matching a segment against the caller's
// category list.
type categoryMatch struct {
	category model.Category
	score    float64
	guessed  bool
}

// matchCategory scores every category of the classified type against the
// normalized segment and picks the best, degrading gracefully:
// scored match → category named "Khác"/"Other" → first category of the
// type (marked guessed) → failure when no category of the type exists.
// Ties keep the earliest category in the caller's order.
func matchCategory(normalized string, categories []model.Category, txType model.CategoryType) (categoryMatch, bool) {
	var best categoryMatch
	var fallbackOther *model.Category
	var firstOfType *model.Category

	for i := range categories {
		cat := categories[i]
		if cat.Type != txType {
			continue
		}
		if firstOfType == nil {
			firstOfType = &categories[i]
		}

		name := strings.ToLower(cat.Name)
		if fallbackOther == nil && (name == "khác" || name == "other") {
			fallbackOther = &categories[i]
		}

		score := scoreCategory(normalized, name)
		if score > best.score {
			best = categoryMatch{category: cat, score: score}
		}
	}

	if best.score > 0 {
		return best, true
	}
	if fallbackOther != nil {
		return categoryMatch{category: *fallbackOther}, true
	}
	if firstOfType != nil {
		return categoryMatch{category: *firstOfType, guessed: true}, true
	}
	return categoryMatch{}, false
}

func scoreCategory(normalized, lowerName string) float64 {
	if lowerName != "" && strings.Contains(normalized, lowerName) {
		return verbatimNameScore
	}
	for _, kw := range categoryKeywords[lowerName] {
		if strings.Contains(normalized, kw) {
			return keywordScore
		}
	}
	return 0
}
