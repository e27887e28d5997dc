package services

import (
	"fmt"
	"log"
	"math"
)

// ScoreBucket is one cell of the full-scale NPS distribution.
type ScoreBucket struct {
	Score int     `json:"score"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type NPSResult struct {
	Score          float64       `json:"score"`
	Interpretation string        `json:"interpretation"`
	Promoters      int           `json:"promoters"`
	Passives       int           `json:"passives"`
	Detractors     int           `json:"detractors"`
	PromoterPct    float64       `json:"promoter_pct"`
	PassivePct     float64       `json:"passive_pct"`
	DetractorPct   float64       `json:"detractor_pct"`
	TotalResponses int           `json:"total_responses"`
	QuestionID     string        `json:"question_id"`
	QuestionText   string        `json:"question_text"`
	MinScale       int           `json:"min_scale"`
	MaxScale       int           `json:"max_scale"`
	DetractorRange string        `json:"detractor_range"`
	PassiveRange   string        `json:"passive_range"`
	PromoterRange  string        `json:"promoter_range"`
	Distribution   []ScoreBucket `json:"distribution"`
}

// aggregateNPS classifies the numeric answers to one rating question and
// computes the score, band counts, and full-scale distribution. Returns
// nil when the scale is unusable (min >= max, or span too narrow to hold
// three bands) or when no value lands inside the scale.
func aggregateNPS(q *Question, values []float64, bands []NPSBand) *NPSResult {
	minScale, maxScale := q.ScaleBounds()
	if minScale >= maxScale {
		log.Printf("nps: question %s has invalid scale [%d,%d], skipping", q.ID, minScale, maxScale)
		return nil
	}
	if maxScale-minScale < 2 {
		log.Printf("nps: question %s scale [%d,%d] too narrow for detractor/passive/promoter bands, skipping",
			q.ID, minScale, maxScale)
		return nil
	}
	detractorMax, passiveMax := npsThresholds(minScale, maxScale)

	counts := make([]int, maxScale-minScale+1)
	promoters, passives, detractors := 0, 0, 0
	for _, v := range values {
		score := int(math.Round(v))
		if score < minScale || score > maxScale {
			log.Printf("nps: question %s answer %v outside scale [%d,%d], dropped", q.ID, v, minScale, maxScale)
			continue
		}
		counts[score-minScale]++
		switch {
		case score <= detractorMax:
			detractors++
		case score <= passiveMax:
			passives++
		default:
			promoters++
		}
	}

	total := promoters + passives + detractors
	if total == 0 {
		return nil
	}

	distribution := make([]ScoreBucket, 0, len(counts))
	for i, count := range counts {
		distribution = append(distribution, ScoreBucket{
			Score: minScale + i,
			Count: count,
			Pct:   percent(count, total),
		})
	}

	score := roundHalfUp1(100 * float64(promoters-detractors) / float64(total))
	return &NPSResult{
		Score:          score,
		Interpretation: interpretNPS(score, bands),
		Promoters:      promoters,
		Passives:       passives,
		Detractors:     detractors,
		PromoterPct:    percent(promoters, total),
		PassivePct:     percent(passives, total),
		DetractorPct:   percent(detractors, total),
		TotalResponses: total,
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		MinScale:       minScale,
		MaxScale:       maxScale,
		DetractorRange: fmt.Sprintf("%d-%d", minScale, detractorMax),
		PassiveRange:   fmt.Sprintf("%d-%d", detractorMax+1, passiveMax),
		PromoterRange:  fmt.Sprintf("%d-%d", passiveMax+1, maxScale),
		Distribution:   distribution,
	}
}
