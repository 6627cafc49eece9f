package speech

type EncouragementResponse struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}
