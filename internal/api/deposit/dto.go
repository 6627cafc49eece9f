package deposit

type RegisterDepositRequest struct {
	UserID      string  `json:"user_id" validate:"required"`
	TotemID     string  `json:"totem_id" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Confidence  float64 `json:"confidence"`
	Rule        string  `json:"rule"`
	Saturation  float64 `json:"saturation"`
	SnapshotURL string  `json:"snapshot_url"`
}

type DepositResponse struct {
	ID          string  `json:"id"`
	TotemID     string  `json:"totem_id"`
	Category    string  `json:"category"`
	Points      int     `json:"points"`
	Confidence  float64 `json:"confidence"`
	SnapshotURL string  `json:"snapshot_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type DepositListResponse struct {
	Deposits    []DepositResponse `json:"deposits"`
	TotalCaps   int               `json:"total_caps"`
	TotalPoints int               `json:"total_points"`
}

type StatsResponse struct {
	TotalCaps   int            `json:"total_caps"`
	TotalPoints int            `json:"total_points"`
	ByCategory  map[string]int `json:"by_category"`
}

type LeaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	TotalCaps   int    `json:"total_caps"`
	TotalPoints int    `json:"total_points"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}
