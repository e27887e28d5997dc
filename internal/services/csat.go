package services

import (
	"log"
	"math"
	"sort"
	"time"

	"github.com/istitla/istitla/internal/arabictext"
)

// Grain is the calendar period CSAT tracking buckets by.
type Grain string

const (
	GrainDay   Grain = "day"
	GrainWeek  Grain = "week"
	GrainMonth Grain = "month"
)

// ParseGrain maps a request parameter to a Grain. The boolean is false for
// unrecognized input, which callers substitute with GrainDay.
func ParseGrain(s string) (Grain, bool) {
	switch Grain(s) {
	case GrainDay, GrainWeek, GrainMonth:
		return Grain(s), true
	}
	return GrainDay, false
}

// CSATPeriod is one calendar bucket of classified answers.
type CSATPeriod struct {
	Period       string  `json:"period"`
	Score        float64 `json:"score"`
	Satisfied    int     `json:"satisfied"`
	Neutral      int     `json:"neutral"`
	Dissatisfied int     `json:"dissatisfied"`
	Total        int     `json:"total"`
}

// CSATSummary aggregates a tracking series into a single score with the
// conventional interpretation label.
type CSATSummary struct {
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation"`
	Satisfied      int     `json:"satisfied"`
	Neutral        int     `json:"neutral"`
	Dissatisfied   int     `json:"dissatisfied"`
	Total          int     `json:"total"`
}

// classifiedAnswer pairs an answer's sentiment with its submission instant
// already converted to the target timezone.
type classifiedAnswer struct {
	sentiment arabictext.Sentiment
	at        time.Time
}

// classifyCSATAnswers resolves each answer to a sentiment according to the
// question type. Answers that stay SentimentUnknown are dropped here;
// yes/no unknowns become Neutral unless excludeUnknown is set.
func classifyCSATAnswers(q *Question, answers []*Answer, options []*QuestionOption,
	responses map[string]*Response, loc *time.Location, excludeUnknown bool) []classifiedAnswer {

	usable := make([]*Answer, 0, len(answers))
	for _, a := range answers {
		if r := responses[a.ResponseID]; r.Countable() {
			usable = append(usable, a)
		}
	}

	out := make([]classifiedAnswer, 0, len(usable))
	add := func(a *Answer, sentiment arabictext.Sentiment) {
		if sentiment == arabictext.SentimentUnknown {
			return
		}
		at := responses[a.ResponseID].SubmittedAt.In(loc)
		out = append(out, classifiedAnswer{sentiment: sentiment, at: at})
	}

	switch q.Type {
	case QuestionSingleChoice:
		byID := make(map[string]*QuestionOption, len(options))
		byText := make(map[string]*QuestionOption, len(options))
		for _, opt := range options {
			byID[opt.ID] = opt
			byText[arabictext.Normalize(opt.Text, false)] = opt
		}
		for _, a := range usable {
			opt := byID[a.Value]
			if opt == nil {
				opt = byText[arabictext.Normalize(a.Value, false)]
			}
			if opt != nil && opt.SatisfactionValue != nil {
				add(a, satisfactionToSentiment(*opt.SatisfactionValue))
				continue
			}
			// legacy data without a mapped value
			add(a, arabictext.ClassifyChoice(a.Value))
		}
	case QuestionYesNo:
		for _, a := range usable {
			switch arabictext.ClassifyYesNo(a.Value) {
			case arabictext.Yes:
				add(a, arabictext.Satisfied)
			case arabictext.No:
				add(a, arabictext.Dissatisfied)
			default:
				if !excludeUnknown {
					add(a, arabictext.Neutral)
				}
			}
		}
	case QuestionRating:
		classifyRatingAnswers(q, usable, add)
	default:
		// selector rule 4 can pick an arbitrary question type; keyword
		// classification is the only option left
		for _, a := range usable {
			add(a, arabictext.ClassifyChoice(a.Value))
		}
	}
	return out
}

func satisfactionToSentiment(v int) arabictext.Sentiment {
	switch v {
	case 2:
		return arabictext.Satisfied
	case 1:
		return arabictext.Neutral
	case 0:
		return arabictext.Dissatisfied
	}
	return arabictext.SentimentUnknown
}

// classifyRatingAnswers maps numeric answers to sentiments. A valid
// declared scale yields NPS-style thresholds; otherwise cut points are
// auto-detected from the observed maximum (5-point and 10-point
// conventions, then percentile cuts for anything wider).
func classifyRatingAnswers(q *Question, answers []*Answer, add func(*Answer, arabictext.Sentiment)) {
	type numbered struct {
		answer *Answer
		value  float64
	}
	nums := make([]numbered, 0, len(answers))
	for _, a := range answers {
		if v, ok := arabictext.ExtractNumber(a.Value); ok {
			nums = append(nums, numbered{answer: a, value: v})
		}
	}
	if len(nums) == 0 {
		return
	}

	if q.HasExplicitScale() {
		minScale, maxScale := q.ScaleBounds()
		if maxScale-minScale >= 2 {
			detractorMax, passiveMax := npsThresholds(minScale, maxScale)
			for _, n := range nums {
				v := int(math.Round(n.value))
				if v < minScale || v > maxScale {
					log.Printf("csat: question %s answer %v outside scale [%d,%d], dropped",
						q.ID, n.value, minScale, maxScale)
					continue
				}
				switch {
				case v > passiveMax:
					add(n.answer, arabictext.Satisfied)
				case v > detractorMax:
					add(n.answer, arabictext.Neutral)
				default:
					add(n.answer, arabictext.Dissatisfied)
				}
			}
			return
		}
		log.Printf("csat: question %s scale [%d,%d] too narrow, falling back to auto-detection",
			q.ID, minScale, maxScale)
	}

	observedMax := nums[0].value
	for _, n := range nums {
		if n.value > observedMax {
			observedMax = n.value
		}
	}
	switch {
	case observedMax <= 5:
		for _, n := range nums {
			switch {
			case n.value >= 4:
				add(n.answer, arabictext.Satisfied)
			case n.value >= 3:
				add(n.answer, arabictext.Neutral)
			default:
				add(n.answer, arabictext.Dissatisfied)
			}
		}
	case observedMax <= 10:
		for _, n := range nums {
			switch {
			case n.value >= 8:
				add(n.answer, arabictext.Satisfied)
			case n.value >= 6:
				add(n.answer, arabictext.Neutral)
			default:
				add(n.answer, arabictext.Dissatisfied)
			}
		}
	default:
		sorted := make([]float64, 0, len(nums))
		for _, n := range nums {
			sorted = append(sorted, n.value)
		}
		sort.Float64s(sorted)
		satisfiedCut := percentile(sorted, 0.80)
		neutralCut := percentile(sorted, 0.40)
		for _, n := range nums {
			switch {
			case n.value >= satisfiedCut:
				add(n.answer, arabictext.Satisfied)
			case n.value >= neutralCut:
				add(n.answer, arabictext.Neutral)
			default:
				add(n.answer, arabictext.Dissatisfied)
			}
		}
	}
}

// periodStart truncates t to the start of its calendar bucket. Weeks start
// on Sunday.
func periodStart(t time.Time, grain Grain) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	switch grain {
	case GrainWeek:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case GrainMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
	return day
}

func periodLabel(start time.Time, grain Grain) string {
	if grain == GrainMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

func nextPeriod(start time.Time, grain Grain) time.Time {
	switch grain {
	case GrainWeek:
		return start.AddDate(0, 0, 7)
	case GrainMonth:
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

// bucketCSAT groups classified answers into ascending calendar periods.
// With fillEmpty set, periods between the first and last observed bucket
// are emitted even when empty, reporting zero counts and score 0.
func bucketCSAT(classified []classifiedAnswer, grain Grain, fillEmpty bool) []CSATPeriod {
	periods := make([]CSATPeriod, 0)
	if len(classified) == 0 {
		return periods
	}

	byLabel := map[string]*CSATPeriod{}
	var first, last time.Time
	for _, ca := range classified {
		start := periodStart(ca.at, grain)
		label := periodLabel(start, grain)
		p := byLabel[label]
		if p == nil {
			p = &CSATPeriod{Period: label}
			byLabel[label] = p
			if first.IsZero() || start.Before(first) {
				first = start
			}
			if last.IsZero() || start.After(last) {
				last = start
			}
		}
		switch ca.sentiment {
		case arabictext.Satisfied:
			p.Satisfied++
		case arabictext.Neutral:
			p.Neutral++
		case arabictext.Dissatisfied:
			p.Dissatisfied++
		}
	}

	labels := make([]string, 0, len(byLabel))
	if fillEmpty {
		lastLabel := periodLabel(last, grain)
		for s := first; ; s = nextPeriod(s, grain) {
			label := periodLabel(s, grain)
			labels = append(labels, label)
			if label == lastLabel {
				break
			}
		}
	} else {
		for label := range byLabel {
			labels = append(labels, label)
		}
		// the label formats sort chronologically within one grain
		sort.Strings(labels)
	}

	for _, label := range labels {
		p := byLabel[label]
		if p == nil {
			periods = append(periods, CSATPeriod{Period: label})
			continue
		}
		p.Total = p.Satisfied + p.Neutral + p.Dissatisfied
		p.Score = percent(p.Satisfied, p.Total)
		periods = append(periods, *p)
	}
	return periods
}

// SummarizeCSAT rolls a tracking series up into one overall score. Returns
// nil for an empty series.
func SummarizeCSAT(periods []CSATPeriod) *CSATSummary {
	sum := &CSATSummary{}
	for _, p := range periods {
		sum.Satisfied += p.Satisfied
		sum.Neutral += p.Neutral
		sum.Dissatisfied += p.Dissatisfied
	}
	sum.Total = sum.Satisfied + sum.Neutral + sum.Dissatisfied
	if sum.Total == 0 {
		return nil
	}
	sum.Score = percent(sum.Satisfied, sum.Total)
	sum.Interpretation = interpretCSAT(sum.Score)
	return sum
}
