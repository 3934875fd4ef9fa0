package services

import (
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "folicular"
	PhaseOvulation  Phase = "ovulação"
	PhaseLuteal     Phase = "lútea"
	PhaseUnknown    Phase = "desconhecida"
)

const ovulationToleranceDays = 1

func Phases() []Phase {
	return []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal, PhaseUnknown}
}

type CurrentCycleInfo struct {
	CurrentDay          int   `json:"current_day"`
	CurrentPhase        Phase `json:"current_phase"`
	DaysUntilNextPeriod int   `json:"days_until_next_period"`
}

// GetCurrentCycleInfo classifies today against the latest cycle and its prediction.
// It keeps no state between calls; the phase is derived from dates alone.
func GetCurrentCycleInfo(latestCycle models.Cycle, prediction CyclePrediction, stats CycleStats, today time.Time) CurrentCycleInfo {
	elapsed := DaysBetween(latestCycle.StartDate, today)

	info := CurrentCycleInfo{
		CurrentDay:          max(elapsed+1, 1),
		CurrentPhase:        PhaseUnknown,
		DaysUntilNextPeriod: max(DaysBetween(today, prediction.NextPeriodStartDate), 0),
	}
	if elapsed < 0 {
		return info
	}

	info.CurrentPhase = classifyPhase(info.CurrentDay, latestCycle.FlowDurationOr(stats.AverageFlowDuration), prediction, today)
	return info
}

func classifyPhase(currentDay int, flowDuration int, prediction CyclePrediction, today time.Time) Phase {
	if flowDuration <= 0 {
		flowDuration = models.DefaultFlowDuration
	}

	inFertileWindow := prediction.InFertileWindow(today)
	offsetFromOvulation := DaysBetween(prediction.OvulationDate, today)

	switch {
	case currentDay <= flowDuration:
		return PhaseMenstrual
	case inFertileWindow && abs(offsetFromOvulation) <= ovulationToleranceDays:
		return PhaseOvulation
	case DaysBetween(today, prediction.FertileWindowStart) > 0 || inFertileWindow:
		return PhaseFollicular
	case offsetFromOvulation > 0 && DaysBetween(today, prediction.NextPeriodStartDate) > 0:
		return PhaseLuteal
	default:
		return PhaseUnknown
	}
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
