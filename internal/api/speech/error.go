package speech

import "TotemIA/pkg/response"

var (
	ErrScriptGeneration = response.NewError(500, "failed to generate encouragement script")
	ErrAudioGeneration  = response.NewError(500, "failed to synthesize audio")
)
