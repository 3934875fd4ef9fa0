package services

import (
	"math"

	"github.com/terraincognita07/ciclo/internal/models"
)

// Cycle lengths outside (MinPlausibleCycleLength, MaxPlausibleCycleLength) are treated as
// logging noise and excluded from the average.
const (
	MinPlausibleCycleLength = 15
	MaxPlausibleCycleLength = 45
)

type CycleStats struct {
	AverageCycleLength  int `json:"average_cycle_length"`
	AverageFlowDuration int `json:"average_flow_duration"`
	CycleCount          int `json:"cycle_count"`
}

func DefaultCycleStats() CycleStats {
	return CycleStats{
		AverageCycleLength:  models.DefaultCycleLength,
		AverageFlowDuration: models.DefaultFlowDuration,
		CycleCount:          0,
	}
}

// CalculateStats reduces a most-recent-first cycle history to averages.
// The input order is trusted and the slice is never modified.
func CalculateStats(cycles []models.Cycle) CycleStats {
	stats := DefaultCycleStats()
	if len(cycles) == 0 {
		return stats
	}
	stats.CycleCount = len(cycles)

	flowDurations := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		flowDurations = append(flowDurations, cycle.FlowDurationOr(models.DefaultFlowDuration))
	}
	if average, ok := roundedAverage(flowDurations); ok && average > 0 {
		stats.AverageFlowDuration = average
	}

	if average, ok := roundedAverage(plausibleCycleLengths(cycles)); ok && average > 0 {
		stats.AverageCycleLength = average
	}

	return stats
}

func plausibleCycleLengths(cycles []models.Cycle) []int {
	if len(cycles) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(cycles)-1)
	for i := 0; i+1 < len(cycles); i++ {
		length := DaysBetween(cycles[i+1].StartDate, cycles[i].StartDate)
		if length > MinPlausibleCycleLength && length < MaxPlausibleCycleLength {
			lengths = append(lengths, length)
		}
	}
	return lengths
}

func roundedAverage(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var total int
	for _, value := range values {
		total += value
	}
	return int(math.Round(float64(total) / float64(len(values)))), true
}
