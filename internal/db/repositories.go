package db

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/observability"
	"gorm.io/gorm"
)

type Repositories struct {
	Users     *UserRepository
	Cycles    *CycleRepository
	DailyLogs *DailyLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Cycles:    NewCycleRepository(database),
		DailyLogs: NewDailyLogRepository(database),
	}
}

// classifyError maps driver and gorm failures onto models.ErrorKind. Anything that is
// neither a missing row nor a constraint violation counts as storage being unavailable.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var repoErr *models.RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}

	kind := models.ErrorKindUnavailable
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = models.ErrorKindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		kind = models.ErrorKindConflict
	}

	observability.RecordRepositoryError(kind)
	return models.NewRepositoryError(kind, op, err)
}

func notFound(op string) error {
	observability.RecordRepositoryError(models.ErrorKindNotFound)
	return models.NewRepositoryError(models.ErrorKindNotFound, op, nil)
}

func dayStart(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
