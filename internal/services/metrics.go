package services

import "math"

// roundHalfUp1 rounds to one decimal place with ties away from zero, the
// rounding used for every percentage and score field in analytics output.
func roundHalfUp1(x float64) float64 {
	if x >= 0 {
		return math.Floor(x*10+0.5) / 10
	}
	return -math.Floor(-x*10+0.5) / 10
}

// percent returns count/total as a percentage rounded half-up to one
// decimal. Zero total yields 0.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundHalfUp1(100 * float64(count) / float64(total))
}

// npsThresholds derives the detractor/passive cut points from the scale
// span. The clamps reserve at least one integer for each of the three
// bands whenever span >= 2; callers must guard narrower spans.
//
//	detractorMax = floor(min + 0.60*span), capped at max-2
//	passiveMax   = floor(min + 0.80*span), clamped to [detractorMax+1, max-1]
//
// A 0-5 scale resolves to (3, 4); the traditional 0-10 scale to (6, 8).
func npsThresholds(minScale, maxScale int) (detractorMax, passiveMax int) {
	span := maxScale - minScale
	detractorMax = minScale + int(math.Floor(0.60*float64(span)))
	passiveMax = minScale + int(math.Floor(0.80*float64(span)))
	if detractorMax > maxScale-2 {
		detractorMax = maxScale - 2
	}
	if passiveMax < detractorMax+1 {
		passiveMax = detractorMax + 1
	}
	if passiveMax > maxScale-1 {
		passiveMax = maxScale - 1
	}
	return detractorMax, passiveMax
}

// percentile returns the nearest-rank q-th percentile (0 < q <= 1) of
// values, which must be non-empty and sorted ascending.
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// NPSBand maps a score floor to a human-readable label. Bands are checked
// in order; the first whose Min the score reaches wins.
type NPSBand struct {
	Min   float64 `json:"min" mapstructure:"min"`
	Label string  `json:"label" mapstructure:"label"`
}

// DefaultNPSBands mirrors the conventional interpretation table. Hosts can
// override it through configuration.
var DefaultNPSBands = []NPSBand{
	{Min: 70, Label: "Excellent - World class"},
	{Min: 50, Label: "Great - Above average"},
	{Min: 30, Label: "Good - Industry average"},
	{Min: 0, Label: "Fair - Needs improvement"},
	{Min: -100, Label: "Poor - Critical issues"},
}

func interpretNPS(score float64, bands []NPSBand) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	return ""
}

// interpretCSAT labels a CSAT score using the conventional 85/70/50 bands.
func interpretCSAT(score float64) string {
	switch {
	case score >= 85:
		return "Excellent - Highly satisfied"
	case score >= 70:
		return "Good - Generally satisfied"
	case score >= 50:
		return "Fair - Room for improvement"
	default:
		return "Poor - Action required"
	}
}
