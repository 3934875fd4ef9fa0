package services

import (
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

const (
	LutealPhaseDays            = 14
	FertileDaysBeforeOvulation = 5
	FertileDaysAfterOvulation  = 1
)

type CyclePrediction struct {
	NextPeriodStartDate time.Time `json:"next_period_start_date"`
	OvulationDate       time.Time `json:"ovulation_date"`
	FertileWindowStart  time.Time `json:"fertile_window_start"`
	FertileWindowEnd    time.Time `json:"fertile_window_end"`
}

// PredictNextCycle projects the next cycle from the most recent one. The luteal phase is
// fixed at LutealPhaseDays regardless of the statistics.
func PredictNextCycle(latestCycle models.Cycle, stats CycleStats) CyclePrediction {
	cycleLength := stats.AverageCycleLength
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}

	nextPeriodStart := AddDays(latestCycle.StartDate, cycleLength)
	ovulation := AddDays(nextPeriodStart, -LutealPhaseDays)

	return CyclePrediction{
		NextPeriodStartDate: nextPeriodStart,
		OvulationDate:       ovulation,
		FertileWindowStart:  AddDays(ovulation, -FertileDaysBeforeOvulation),
		FertileWindowEnd:    AddDays(ovulation, FertileDaysAfterOvulation),
	}
}

func (prediction CyclePrediction) InFertileWindow(day time.Time) bool {
	return betweenInclusive(day, prediction.FertileWindowStart, prediction.FertileWindowEnd)
}
