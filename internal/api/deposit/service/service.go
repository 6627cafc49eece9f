package depositService

import (
	"TotemIA/internal/api/deposit"
	depositRepository "TotemIA/internal/api/deposit/repository"
	rewardsRepository "TotemIA/internal/api/rewards/repository"
	"TotemIA/internal/entity"
	"TotemIA/pkg/redis"
	"TotemIA/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IDepositService interface {
	RegisterDeposit(ctx context.Context, req deposit.RegisterDepositRequest) (entity.Deposit, error)
	GetDepositsByPeriod(ctx context.Context, userID string, period string) ([]entity.Deposit, error)
	GetUserStats(ctx context.Context, userID string) (entity.UserDepositStats, error)
	GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type depositService struct {
	log               *logrus.Logger
	depositRepository depositRepository.Repository
	rewardsRepository rewardsRepository.Repository
	redis             redis.IRedis
	utils             utils.IUtils
}

func NewDepositService(
	log *logrus.Logger,
	dr depositRepository.Repository,
	rr rewardsRepository.Repository,
	redis redis.IRedis,
	utils utils.IUtils,
) IDepositService {
	return &depositService{
		log:               log,
		depositRepository: dr,
		rewardsRepository: rr,
		redis:             redis,
		utils:             utils,
	}
}
