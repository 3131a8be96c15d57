package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// timestampLayout is the wire format for all record timestamps: UTC, second
// granularity, no zone suffix.
const timestampLayout = "2006-01-02 15:04:05"

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}

type recordJSON struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int64  `json:"duration"`
	CreatedAt string `json:"createdAt"`
}

func toRecordJSON(r *models.Record) recordJSON {
	return recordJSON{
		ID:        r.ID,
		StartTime: r.StartTime.UTC().Format(timestampLayout),
		EndTime:   r.EndTime.UTC().Format(timestampLayout),
		Duration:  r.Duration,
		CreatedAt: r.CreatedAt.UTC().Format(timestampLayout),
	}
}

type statsJSON struct {
	TotalCount      int64            `json:"totalCount"`
	TotalDuration   int64            `json:"totalDuration"`
	AverageDuration int64            `json:"averageDuration"`
	DailyCounts     map[string]int64 `json:"dailyCounts"`
}

func toStatsJSON(s *models.Stats) statsJSON {
	return statsJSON{
		TotalCount:      s.TotalCount,
		TotalDuration:   s.TotalDuration,
		AverageDuration: s.AverageDuration,
		DailyCounts:     s.DailyCounts,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage is the error shape of the auth endpoints: {"message": ...}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError is the error shape of the record and stats endpoints:
// {"error": ...}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
