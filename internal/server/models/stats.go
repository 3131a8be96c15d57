package models

// Stats aggregates a user's records on demand.
//
// DailyCounts always holds exactly 7 keys: UTC today and the 6 preceding
// calendar dates, formatted "YYYY-MM-DD". Dates without records map to 0.
type Stats struct {
	TotalCount      int64
	TotalDuration   int64
	AverageDuration int64
	DailyCounts     map[string]int64
}
