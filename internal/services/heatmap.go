package services

import "time"

// Heatmap is a weekday-by-hour density matrix of response submissions in a
// target timezone. Day index follows time.Weekday: Sunday = 0, Saturday = 6.
type Heatmap struct {
	Matrix       [7][24]int `json:"matrix"`
	TotalsByDay  [7]int     `json:"totals_by_day"`
	TotalsByHour [24]int    `json:"totals_by_hour"`
	Total        int        `json:"total"`
}

// BuildHeatmap buckets every complete, timestamped response into its local
// weekday and hour cell. Responses without a timestamp are skipped. Empty
// input yields an all-zero matrix.
func BuildHeatmap(responses []*Response, loc *time.Location) *Heatmap {
	hm := &Heatmap{}
	for _, r := range responses {
		if !r.Countable() {
			continue
		}
		local := r.SubmittedAt.In(loc)
		day := int(local.Weekday())
		hour := local.Hour()
		hm.Matrix[day][hour]++
		hm.TotalsByDay[day]++
		hm.TotalsByHour[hour]++
		hm.Total++
	}
	return hm
}
