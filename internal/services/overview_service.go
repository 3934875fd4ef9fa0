package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/observability"
)

type CycleReader interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Cycle, error)
}

// CycleOverview is the composed engine output for one user and reference date.
// Prediction and Current are nil when no cycle has been recorded.
type CycleOverview struct {
	HasData     bool              `json:"has_data"`
	Today       time.Time         `json:"today"`
	LatestCycle *models.Cycle     `json:"latest_cycle,omitempty"`
	Stats       CycleStats        `json:"stats"`
	Prediction  *CyclePrediction  `json:"prediction,omitempty"`
	Current     *CurrentCycleInfo `json:"current,omitempty"`
}

type OverviewService struct {
	cycles CycleReader
}

func NewOverviewService(cycles CycleReader) *OverviewService {
	return &OverviewService{cycles: cycles}
}

func (service *OverviewService) BuildOverview(ctx context.Context, userID uint, today time.Time) (CycleOverview, error) {
	cycles, err := service.cycles.ListByUser(ctx, userID)
	if err != nil {
		return CycleOverview{}, fmt.Errorf("load cycles: %w", err)
	}

	overview := BuildOverviewFromCycles(cycles, today)
	observability.RecordOverview(overview.HasData)
	return overview, nil
}

// BuildOverviewFromCycles composes the engine stages over an already-loaded,
// most-recent-first history. Zero cycles is a terminal "no data" result.
func BuildOverviewFromCycles(cycles []models.Cycle, today time.Time) CycleOverview {
	overview := CycleOverview{
		Today: dateOnly(today),
		Stats: CalculateStats(cycles),
	}
	if len(cycles) == 0 {
		return overview
	}

	latest := cycles[0]
	prediction := PredictNextCycle(latest, overview.Stats)
	current := GetCurrentCycleInfo(latest, prediction, overview.Stats, today)

	overview.HasData = true
	overview.LatestCycle = &latest
	overview.Prediction = &prediction
	overview.Current = &current
	return overview
}
