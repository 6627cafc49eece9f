package classification

type ClassifyRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	TotemID     string `json:"totem_id"`
}

type DiagnoseRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

type ClassifyResponse struct {
	Accepted    bool    `json:"accepted"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	Rule        string  `json:"rule,omitempty"`
	Saturation  float64 `json:"saturation"`
	Points      int     `json:"points,omitempty"`
	DepositID   string  `json:"deposit_id,omitempty"`
	SnapshotURL string  `json:"snapshot_url,omitempty"`
}

type ClassScoreResponse struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type DiagnoseResponse struct {
	Accepted    bool                 `json:"accepted"`
	Category    string               `json:"category,omitempty"`
	Confidence  float64              `json:"confidence"`
	Reason      string               `json:"reason"`
	Rule        string               `json:"rule,omitempty"`
	Saturation  float64              `json:"saturation"`
	TopK        []ClassScoreResponse `json:"top_k,omitempty"`
	Description string               `json:"description,omitempty"`
}
