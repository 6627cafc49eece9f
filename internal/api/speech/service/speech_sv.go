package speechService

import (
	"TotemIA/internal/api/speech"
	contextPkg "TotemIA/pkg/context"
	chatGPT "TotemIA/pkg/openai"
	"context"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cached per user and color so a burst of deposits at the totem does not
// hammer the OpenAI and ElevenLabs APIs.
const encouragementCacheTTL = 10 * time.Minute

func (s *speechService) GetEncouragement(ctx context.Context, userID, capColor string) (*speech.EncouragementResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cacheKey := fmt.Sprintf("speech:encouragement:%s:%s", userID, capColor)

	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var response speech.EncouragementResponse
		if err := json.UnmarshalFromString(cached, &response); err == nil {
			return &response, nil
		}
	}

	stats, err := s.depositService.GetUserStats(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get user stats for encouragement")
		return nil, err
	}

	userName := ""
	if repo, err := s.authRepo.NewClient(false); err == nil {
		if user, err := repo.Users.GetByID(ctx, userID); err == nil {
			userName = user.Name
		}
	}

	script, err := s.chatGPT.GenerateEncouragement(ctx, chatGPT.EncouragementRequest{
		UserName:    userName,
		CapColor:    capColor,
		TotalCaps:   stats.TotalCaps,
		TotalPoints: stats.TotalPoints,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate encouragement script")
		return nil, speech.ErrScriptGeneration
	}

	response := &speech.EncouragementResponse{
		Text: script,
	}

	if s.tts != nil {
		audioData, err := s.tts.GenerateAudio(script)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to synthesize audio, returning text only")
		} else if s.s3 != nil {
			audioURL, err := s.s3.UploadBytes("encouragement.mp3", audioData, "audio/mpeg")
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to upload encouragement audio")
			} else {
				response.AudioURL = audioURL
			}
		}
	}

	if encoded, err := json.MarshalToString(response); err == nil {
		if err := s.redis.Set(ctx, cacheKey, encoded, encouragementCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache encouragement")
		}
	}

	return response, nil
}
