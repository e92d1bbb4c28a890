package models

import "time"

// RoastStats is a derived aggregate computed on demand; it is never persisted.
type RoastStats struct {
	TotalRoasts int64                `json:"total_roasts"`
	RoastLevels map[RoastLevel]int64 `json:"roast_levels"`
	LastUpdated time.Time            `json:"last_updated"`
}
