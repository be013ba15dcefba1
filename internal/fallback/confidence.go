package fallback

import "github.com/ndhuy/tienoi/internal/model"

// baselineConfidence is the rule-based floor every successful extraction
// starts from before bonuses and penalties.
const baselineConfidence = 0.5

// finalizeConfidence clamps the accumulated raw score to the fallback
// range. Clamping happens exactly once, after all additions and the guess
// penalty have been applied; clamping per step would change results when a
// penalty and several bonuses combine.
func finalizeConfidence(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw > model.FallbackConfidenceCeiling {
		return model.FallbackConfidenceCeiling
	}
	return raw
}
