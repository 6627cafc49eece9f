package rewardsService

import (
	"TotemIA/internal/api/rewards"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"time"
)

func (s *rewardsService) GetWallet(ctx context.Context, userID string, page, limit int) (*rewards.WalletResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	wallet, err := repo.Wallet.GetWalletByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get wallet")
		return nil, err
	}

	offset := (page - 1) * limit

	transactions, total, err := repo.Wallet.GetWalletTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"wallet_id":  wallet.ID,
			"error":      err.Error(),
		}).Error("Failed to get wallet transactions")
		return nil, err
	}

	transactionResponses := make([]rewards.WalletTransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		transactionResponses = append(transactionResponses, rewards.WalletTransactionResponse{
			ID:          transaction.ID,
			Type:        transaction.Type,
			Amount:      transaction.Amount,
			Description: transaction.Description,
			CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
		})
	}

	return &rewards.WalletResponse{
		Balance:      wallet.Balance,
		Transactions: transactionResponses,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}

func (s *rewardsService) GetPartners(ctx context.Context) ([]entity.Partner, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	partners, err := repo.Catalog.GetPartners(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get partners")
		return nil, err
	}

	return partners, nil
}

func (s *rewardsService) GetRewardsByPartner(ctx context.Context, partnerID string) ([]entity.Reward, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	if _, err := repo.Catalog.GetPartnerByID(ctx, partnerID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"partner_id": partnerID,
			"error":      err.Error(),
		}).Warn("Partner lookup failed")
		return nil, err
	}

	rewardList, err := repo.Catalog.GetRewardsByPartnerID(ctx, partnerID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"partner_id": partnerID,
			"error":      err.Error(),
		}).Error("Failed to get rewards by partner")
		return nil, err
	}

	return rewardList, nil
}

func (s *rewardsService) RedeemReward(ctx context.Context, req rewards.RedeemRewardRequest) (entity.Redemption, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Redemption{}, err
	}
	defer repo.Rollback()

	reward, err := repo.Catalog.GetRewardByID(ctx, req.RewardID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"reward_id":  req.RewardID,
			"error":      err.Error(),
		}).Warn("Reward lookup failed")
		return entity.Redemption{}, err
	}

	if !reward.IsActive {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"reward_id":  reward.ID,
		}).Warn("Reward is not active")
		return entity.Redemption{}, rewards.ErrRewardInactive
	}

	wallet, err := repo.Wallet.GetWalletByUserID(ctx, req.UserID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    req.UserID,
			"error":      err.Error(),
		}).Warn("Wallet lookup failed")
		return entity.Redemption{}, err
	}

	if wallet.Balance < reward.Cost {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"balance":    wallet.Balance,
			"cost":       reward.Cost,
		}).Warn("Insufficient points balance")
		return entity.Redemption{}, rewards.ErrInsufficientPoints
	}

	if err := repo.Wallet.UpdateWalletBalance(ctx, req.UserID, wallet.Balance-reward.Cost); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to debit wallet")
		return entity.Redemption{}, rewards.ErrRedeemReward
	}

	transactionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Redemption{}, err
	}

	transaction := entity.WalletTransaction{
		ID:          transactionID,
		WalletID:    wallet.ID,
		Type:        string(entity.WalletTransactionDebit),
		Amount:      reward.Cost,
		Description: fmt.Sprintf("Resgate de %s", reward.Name),
		CreatedAt:   time.Now(),
	}

	if err := repo.Wallet.CreateWalletTransaction(ctx, transaction); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create wallet transaction")
		return entity.Redemption{}, rewards.ErrRedeemReward
	}

	redemptionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Redemption{}, err
	}

	redemption := entity.Redemption{
		ID:          redemptionID,
		UserID:      req.UserID,
		RewardID:    reward.ID,
		VoucherCode: makeVoucherCode(redemptionID),
		Status:      string(entity.RedemptionStatusIssued),
		CreatedAt:   time.Now(),
	}

	if err := repo.Catalog.CreateRedemption(ctx, redemption); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create redemption")
		return entity.Redemption{}, rewards.ErrRedeemReward
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit redemption")
		return entity.Redemption{}, rewards.ErrRedeemReward
	}

	s.sendVoucher(ctx, req.UserID, reward, redemption)

	return redemption, nil
}

// sendVoucher delivers the voucher over WhatsApp. Delivery failures do not
// undo the redemption, the voucher is still visible in the app.
func (s *rewardsService) sendVoucher(ctx context.Context, userID string, reward entity.Reward, redemption entity.Redemption) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.whatsapp == nil {
		return
	}

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth client")
		return
	}

	user, err := repo.Users.GetByID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Failed to get user for voucher delivery")
		return
	}

	partnerName := ""
	rewardsRepo, err := s.rewardsRepository.NewClient(false)
	if err == nil {
		if partner, err := rewardsRepo.Catalog.GetPartnerByID(ctx, reward.PartnerID); err == nil {
			partnerName = partner.Name
		}
	}

	if err := s.whatsapp.SendVoucher(ctx, user.PhoneNumber, partnerName, reward.Name, redemption.VoucherCode); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Failed to send voucher over WhatsApp")
	}
}

func (s *rewardsService) GetRedemptions(ctx context.Context, userID string) ([]entity.Redemption, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	redemptions, err := repo.Catalog.GetRedemptionsByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get redemptions")
		return nil, err
	}

	return redemptions, nil
}

func makeVoucherCode(redemptionID string) string {
	if len(redemptionID) > 8 {
		return "TAMPS-" + redemptionID[len(redemptionID)-8:]
	}

	return "TAMPS-" + redemptionID
}
