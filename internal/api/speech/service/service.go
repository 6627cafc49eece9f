package speechService

import (
	authRepository "TotemIA/internal/api/auth/repository"
	depositService "TotemIA/internal/api/deposit/service"
	"TotemIA/internal/api/speech"
	"TotemIA/pkg/audio"
	chatGPT "TotemIA/pkg/openai"
	"TotemIA/pkg/redis"
	"TotemIA/pkg/s3"
	"context"
	"github.com/sirupsen/logrus"
)

type ISpeechService interface {
	GetEncouragement(ctx context.Context, userID, capColor string) (*speech.EncouragementResponse, error)
}

type speechService struct {
	log            *logrus.Logger
	chatGPT        chatGPT.IChatGPT
	tts            *audio.TTSService
	s3             s3.ItfS3
	redis          redis.IRedis
	depositService depositService.IDepositService
	authRepo       authRepository.Repository
}

func NewSpeechService(
	log *logrus.Logger,
	gpt chatGPT.IChatGPT,
	tts *audio.TTSService,
	s3 s3.ItfS3,
	redis redis.IRedis,
	ds depositService.IDepositService,
	ar authRepository.Repository,
) ISpeechService {
	return &speechService{
		log:            log,
		chatGPT:        gpt,
		tts:            tts,
		s3:             s3,
		redis:          redis,
		depositService: ds,
		authRepo:       ar,
	}
}
