package fallback

import "strings"

// segment splits a message into candidate single-transaction pieces.
//
// Newlines always split. Commas split only when every piece carries a
// digit; the guard keeps a thousands-separated number like "1,500" from
// reading as two transactions when the rest of the message has no digits.
// A single amount written as "1,500 đồng tiền ăn" still mis-splits since
// both pieces contain digits. Accepted ambiguity; changing it changes
// results for every comma-separated multi-transaction message.
func segment(message string) []string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil
	}

	if strings.Contains(trimmed, "\n") {
		var segments []string
		for _, piece := range strings.Split(trimmed, "\n") {
			if piece = strings.TrimSpace(piece); piece != "" {
				segments = append(segments, piece)
			}
		}
		return segments
	}

	if strings.Contains(trimmed, ",") {
		pieces := strings.Split(trimmed, ",")
		segments := make([]string, 0, len(pieces))
		allHaveDigits := true
		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if !containsDigit(piece) {
				allHaveDigits = false
				break
			}
			segments = append(segments, piece)
		}
		if allHaveDigits {
			return segments
		}
	}

	return []string{trimmed}
}
