package rewardsService

import (
	authRepository "TotemIA/internal/api/auth/repository"
	"TotemIA/internal/api/rewards"
	rewardsRepository "TotemIA/internal/api/rewards/repository"
	"TotemIA/internal/entity"
	"TotemIA/pkg/utils"
	"TotemIA/pkg/whatsapp"
	"context"
	"github.com/sirupsen/logrus"
)

type IRewardsService interface {
	GetWallet(ctx context.Context, userID string, page, limit int) (*rewards.WalletResponse, error)
	GetPartners(ctx context.Context) ([]entity.Partner, error)
	GetRewardsByPartner(ctx context.Context, partnerID string) ([]entity.Reward, error)
	RedeemReward(ctx context.Context, req rewards.RedeemRewardRequest) (entity.Redemption, error)
	GetRedemptions(ctx context.Context, userID string) ([]entity.Redemption, error)
}

type rewardsService struct {
	log               *logrus.Logger
	rewardsRepository rewardsRepository.Repository
	authRepo          authRepository.Repository
	whatsapp          whatsapp.IWhatsappSender
	utils             utils.IUtils
}

func NewRewardsService(
	log *logrus.Logger,
	rr rewardsRepository.Repository,
	ar authRepository.Repository,
	wa whatsapp.IWhatsappSender,
	utils utils.IUtils,
) IRewardsService {
	return &rewardsService{
		log:               log,
		rewardsRepository: rr,
		authRepo:          ar,
		whatsapp:          wa,
		utils:             utils,
	}
}
