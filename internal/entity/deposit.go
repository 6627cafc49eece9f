package entity

import "time"

// Deposit is one accepted cap credited to a user. Rejected frames are never
// persisted, only counted in logs.
type Deposit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TotemID     string    `json:"totem_id"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	Confidence  float64   `json:"confidence"`
	Rule        string    `json:"rule"`
	Saturation  float64   `json:"saturation"`
	SnapshotURL string    `json:"snapshot_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// pointsByCategory encodes the TAMPS value of each cap color. Rare colors
// pay more to keep collection balanced across partner campaigns.
var pointsByCategory = map[string]int{
	"Vermelho":     5,
	"Azul":         5,
	"Verde":        5,
	"Amarelo":      5,
	"Branco":       5,
	"Preto":        5,
	"Laranja":      8,
	"Rosa":         8,
	"Roxo":         8,
	"Marrom":       8,
	"Cinza":        5,
	"Transparente": 10,
}

func PointsForCategory(category string) int {
	if points, ok := pointsByCategory[category]; ok {
		return points
	}

	return 5
}

func IsValidCapCategory(category string) bool {
	_, ok := pointsByCategory[category]
	return ok
}

type UserDepositStats struct {
	UserID      string         `json:"user_id"`
	TotalCaps   int            `json:"total_caps"`
	TotalPoints int            `json:"total_points"`
	ByCategory  map[string]int `json:"by_category"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	TotalCaps   int    `json:"total_caps"`
	TotalPoints int    `json:"total_points"`
}
