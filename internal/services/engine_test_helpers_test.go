package services

import (
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func intPtr(value int) *int {
	return &value
}

func makeCycle(start string, flow *int) models.Cycle {
	return models.Cycle{
		ID:               "cycle-" + start,
		UserID:           1,
		StartDate:        mustParseDay(start),
		FlowDurationDays: flow,
	}
}
