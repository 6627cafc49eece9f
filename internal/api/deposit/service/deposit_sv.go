package depositService

import (
	"TotemIA/internal/api/deposit"
	"TotemIA/internal/api/rewards"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	leaderboardCacheKey = "deposit:leaderboard"
	leaderboardCacheTTL = 60 * time.Second
)

func (s *depositService) RegisterDeposit(ctx context.Context, req deposit.RegisterDepositRequest) (entity.Deposit, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !entity.IsValidCapCategory(req.Category) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"category":   req.Category,
		}).Warn("Invalid cap category")
		return entity.Deposit{}, deposit.ErrInvalidCategory
	}

	repo, err := s.depositRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Deposit{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Deposit{}, err
	}

	dep := entity.Deposit{
		ID:          ULID,
		UserID:      req.UserID,
		TotemID:     req.TotemID,
		Category:    req.Category,
		Points:      entity.PointsForCategory(req.Category),
		Confidence:  req.Confidence,
		Rule:        req.Rule,
		Saturation:  req.Saturation,
		SnapshotURL: req.SnapshotURL,
		CreatedAt:   time.Now(),
	}

	if err := repo.Deposit.CreateDeposit(ctx, dep); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create deposit")
		return entity.Deposit{}, deposit.ErrCreateDeposit
	}

	if err := s.creditWallet(ctx, dep); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    dep.UserID,
			"error":      err.Error(),
		}).Error("Failed to credit wallet after deposit")
		return entity.Deposit{}, err
	}

	return dep, nil
}

func (s *depositService) creditWallet(ctx context.Context, dep entity.Deposit) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.rewardsRepository.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	wallet, err := repo.Wallet.GetWalletByUserID(ctx, dep.UserID)
	if err != nil {
		if !errors.Is(err, rewards.ErrWalletNotFound) {
			return err
		}

		walletID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return err
		}

		wallet = entity.Wallet{
			ID:     walletID,
			UserID: dep.UserID,
		}

		if err := repo.Wallet.CreateWallet(ctx, wallet); err != nil {
			return err
		}
	}

	if err := repo.Wallet.UpdateWalletBalance(ctx, dep.UserID, wallet.Balance+dep.Points); err != nil {
		return err
	}

	transactionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	transaction := entity.WalletTransaction{
		ID:          transactionID,
		WalletID:    wallet.ID,
		Type:        string(entity.WalletTransactionCredit),
		Amount:      dep.Points,
		Description: fmt.Sprintf("Tampinha %s depositada no totem %s", dep.Category, dep.TotemID),
		CreatedAt:   time.Now(),
	}

	if err := repo.Wallet.CreateWalletTransaction(ctx, transaction); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit wallet credit")
		return err
	}

	return nil
}

func (s *depositService) GetDepositsByPeriod(ctx context.Context, userID string, period string) ([]entity.Deposit, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.depositRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	if period != "all" && period != "week" && period != "month" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"period":     period,
		}).Warn("Invalid period")
		period = "all"
	}

	deposits, err := repo.Deposit.GetDepositsByPeriod(ctx, userID, period)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"period":     period,
			"error":      err.Error(),
		}).Error("Failed to get deposits by period")
		return nil, err
	}

	return deposits, nil
}

func (s *depositService) GetUserStats(ctx context.Context, userID string) (entity.UserDepositStats, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.depositRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.UserDepositStats{}, err
	}

	stats, err := repo.Deposit.GetUserStats(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get user stats")
		return entity.UserDepositStats{}, err
	}

	return stats, nil
}

func (s *depositService) GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.redis.Get(ctx, leaderboardCacheKey); err == nil && cached != "" {
		var entries []entity.LeaderboardEntry
		if err := json.UnmarshalFromString(cached, &entries); err == nil {
			return entries, nil
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Failed to decode cached leaderboard, refetching")
	}

	repo, err := s.depositRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	entries, err := repo.Deposit.GetLeaderboard(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get leaderboard")
		return nil, err
	}

	if encoded, err := json.MarshalToString(entries); err == nil {
		if err := s.redis.Set(ctx, leaderboardCacheKey, encoded, leaderboardCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache leaderboard")
		}
	}

	return entries, nil
}
