package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

type CalendarDay struct {
	Date         string `json:"date"`
	Day          int    `json:"day"`
	InMonth      bool   `json:"in_month"`
	IsToday      bool   `json:"is_today"`
	IsFlow       bool   `json:"is_flow"`
	IsPredicted  bool   `json:"is_predicted"`
	IsFertile    bool   `json:"is_fertile"`
	IsOvulation  bool   `json:"is_ovulation"`
	HasLog       bool   `json:"has_log"`
	IsCycleStart bool   `json:"is_cycle_start"`
}

type CalendarLogReader interface {
	ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.DailyLog, error)
}

type CalendarService struct {
	cycles CycleReader
	logs   CalendarLogReader
}

func NewCalendarService(cycles CycleReader, logs CalendarLogReader) *CalendarService {
	return &CalendarService{cycles: cycles, logs: logs}
}

func (service *CalendarService) BuildMonth(ctx context.Context, userID uint, month time.Time, today time.Time) ([]CalendarDay, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	gridStart, gridEnd := CalendarGridRange(monthStart)

	cycles, err := service.cycles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	logs, err := service.logs.ListByUserRange(ctx, userID, gridStart, gridEnd)
	if err != nil {
		return nil, fmt.Errorf("load daily logs: %w", err)
	}

	overview := BuildOverviewFromCycles(cycles, today)
	return BuildCalendarDays(monthStart, cycles, logs, overview), nil
}

// CalendarGridRange returns the first and last day of the Sunday-first grid covering monthStart.
func CalendarGridRange(monthStart time.Time) (time.Time, time.Time) {
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))
	return gridStart, gridEnd
}

func BuildCalendarDays(monthStart time.Time, cycles []models.Cycle, logs []models.DailyLog, overview CycleOverview) []CalendarDay {
	gridStart, gridEnd := CalendarGridRange(monthStart)

	flowDays := make(map[string]bool)
	cycleStarts := make(map[string]bool, len(cycles))
	for _, cycle := range cycles {
		cycleStarts[FormatDay(cycle.StartDate)] = true
		flow := cycle.FlowDurationOr(overview.Stats.AverageFlowDuration)
		for offset := 0; offset < flow; offset++ {
			flowDays[FormatDay(AddDays(cycle.StartDate, offset))] = true
		}
	}

	hasLog := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if DailyLogHasData(entry) {
			hasLog[FormatDay(entry.Date)] = true
		}
	}

	predicted := make(map[string]bool)
	fertile := make(map[string]bool)
	ovulation := ""
	if overview.Prediction != nil {
		prediction := *overview.Prediction
		for offset := 0; offset < overview.Stats.AverageFlowDuration; offset++ {
			predicted[FormatDay(AddDays(prediction.NextPeriodStartDate, offset))] = true
		}
		for day := prediction.FertileWindowStart; DaysBetween(day, prediction.FertileWindowEnd) >= 0; day = AddDays(day, 1) {
			fertile[FormatDay(day)] = true
		}
		ovulation = FormatDay(prediction.OvulationDate)
	}

	todayKey := FormatDay(overview.Today)
	days := make([]CalendarDay, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := FormatDay(day)
		isOvulation := key == ovulation
		days = append(days, CalendarDay{
			Date:         key,
			Day:          day.Day(),
			InMonth:      day.Month() == monthStart.Month(),
			IsToday:      key == todayKey,
			IsFlow:       flowDays[key],
			IsPredicted:  predicted[key] && !flowDays[key],
			IsFertile:    fertile[key] && !isOvulation,
			IsOvulation:  isOvulation,
			HasLog:       hasLog[key],
			IsCycleStart: cycleStarts[key],
		})
	}
	return days
}
