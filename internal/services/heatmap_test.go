package services

import (
	"testing"
	"time"
)

func tsPtr(t time.Time) *time.Time { return &t }

func TestBuildHeatmapWeekdayIndexing(t *testing.T) {
	// 2025-09-21 is a Sunday
	sunday := time.Date(2025, 9, 21, 9, 15, 0, 0, time.UTC)
	saturday := time.Date(2025, 9, 27, 23, 59, 0, 0, time.UTC)
	responses := []*Response{
		{ID: "r1", IsComplete: true, SubmittedAt: tsPtr(sunday)},
		{ID: "r2", IsComplete: true, SubmittedAt: tsPtr(saturday)},
	}
	hm := BuildHeatmap(responses, time.UTC)
	if hm.Matrix[0][9] != 1 {
		t.Errorf("Sunday 09:00 cell = %d, want 1", hm.Matrix[0][9])
	}
	if hm.Matrix[6][23] != 1 {
		t.Errorf("Saturday 23:00 cell = %d, want 1", hm.Matrix[6][23])
	}
	if hm.TotalsByDay[0] != 1 || hm.TotalsByDay[6] != 1 {
		t.Errorf("day totals = %v", hm.TotalsByDay)
	}
	if hm.TotalsByHour[9] != 1 || hm.TotalsByHour[23] != 1 {
		t.Errorf("hour totals = %v", hm.TotalsByHour)
	}
	if hm.Total != 2 {
		t.Errorf("total = %d, want 2", hm.Total)
	}
}

func TestBuildHeatmapTimezoneShift(t *testing.T) {
	// 22:30 UTC Sunday is 02:30 Monday at UTC+4
	at := time.Date(2025, 9, 21, 22, 30, 0, 0, time.UTC)
	responses := []*Response{{ID: "r1", IsComplete: true, SubmittedAt: tsPtr(at)}}

	gulf := time.FixedZone("UTC+4", 4*3600)
	hm := BuildHeatmap(responses, gulf)
	if hm.Matrix[1][2] != 1 {
		t.Errorf("expected Monday 02:00 cell in UTC+4, matrix day totals = %v", hm.TotalsByDay)
	}

	hm = BuildHeatmap(responses, time.UTC)
	if hm.Matrix[0][22] != 1 {
		t.Errorf("expected Sunday 22:00 cell in UTC, matrix day totals = %v", hm.TotalsByDay)
	}
}

func TestBuildHeatmapSkipsUncountable(t *testing.T) {
	at := time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC)
	responses := []*Response{
		{ID: "r1", IsComplete: true, SubmittedAt: tsPtr(at)},
		{ID: "r2", IsComplete: false, SubmittedAt: tsPtr(at)}, // incomplete
		{ID: "r3", IsComplete: true},                          // no timestamp
	}
	hm := BuildHeatmap(responses, time.UTC)
	if hm.Total != 1 {
		t.Fatalf("total = %d, want 1", hm.Total)
	}
	sum := 0
	for _, row := range hm.Matrix {
		for _, c := range row {
			sum += c
		}
	}
	if sum != hm.Total {
		t.Fatalf("matrix sums to %d, total is %d", sum, hm.Total)
	}
}

func TestBuildHeatmapEmpty(t *testing.T) {
	hm := BuildHeatmap(nil, time.UTC)
	if hm.Total != 0 {
		t.Fatalf("total = %d, want 0", hm.Total)
	}
	for d, row := range hm.Matrix {
		for h, c := range row {
			if c != 0 {
				t.Fatalf("cell [%d][%d] = %d, want 0", d, h, c)
			}
		}
	}
}
