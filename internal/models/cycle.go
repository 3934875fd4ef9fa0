package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultFlowDuration = 5
)

// Cycle is one observed menstrual cycle anchored by the first day of flow.
// EndDate stays nil until the next cycle start is logged.
type Cycle struct {
	ID               string     `gorm:"primaryKey;type:text" json:"id"`
	UserID           uint       `gorm:"not null;uniqueIndex:uidx_cycles_user_start" json:"user_id"`
	StartDate        time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_cycles_user_start" json:"start_date"`
	FlowDurationDays *int       `json:"flow_duration_days"`
	EndDate          *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (cycle Cycle) IsOpen() bool {
	return cycle.EndDate == nil
}

// FlowDurationOr returns the recorded flow duration or fallback when it is unknown.
func (cycle Cycle) FlowDurationOr(fallback int) int {
	if cycle.FlowDurationDays == nil || *cycle.FlowDurationDays <= 0 {
		return fallback
	}
	return *cycle.FlowDurationDays
}
