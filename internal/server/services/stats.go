package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
)

// statsDays is the size of the daily histogram: UTC today plus the six
// preceding calendar dates.
const statsDays = 7

const dayKeyLayout = "2006-01-02"

// timeNow is swapped out in tests.
var timeNow = time.Now

// StatsService computes aggregates over a user's records on demand by
// scanning all of them; nothing is cached or maintained incrementally.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

// Get returns the user's record count, total and floor-averaged duration,
// and the 7-day histogram of record start dates. Records older than the
// window are counted in the totals but excluded from the histogram.
func (s *StatsService) Get(ctx context.Context, userID int64) (*models.Stats, error) {
	records, err := s.repomanager.Records(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading records: %w", err)
	}

	stats := &models.Stats{DailyCounts: make(map[string]int64, statsDays)}

	today := timeNow().UTC()
	for i := 0; i < statsDays; i++ {
		stats.DailyCounts[today.AddDate(0, 0, -i).Format(dayKeyLayout)] = 0
	}

	for _, record := range records {
		stats.TotalCount++
		stats.TotalDuration += record.Duration

		key := record.StartTime.UTC().Format(dayKeyLayout)
		if _, ok := stats.DailyCounts[key]; ok {
			stats.DailyCounts[key]++
		}
	}

	if stats.TotalCount > 0 {
		stats.AverageDuration = stats.TotalDuration / stats.TotalCount
	}

	return stats, nil
}
