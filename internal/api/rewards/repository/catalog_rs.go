package rewardsRepository

import (
	"TotemIA/internal/api/rewards"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type PartnerDB struct {
	ID        sql.NullString `db:"id"`
	Name      sql.NullString `db:"name"`
	LogoURL   sql.NullString `db:"logo_url"`
	IsActive  sql.NullBool   `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

type RewardDB struct {
	ID        sql.NullString `db:"id"`
	PartnerID sql.NullString `db:"partner_id"`
	Name      sql.NullString `db:"name"`
	Cost      sql.NullInt64  `db:"cost"`
	IsActive  sql.NullBool   `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

type RedemptionDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	RewardID    sql.NullString `db:"reward_id"`
	VoucherCode sql.NullString `db:"voucher_code"`
	Status      sql.NullString `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *catalogRepository) GetPartners(ctx context.Context) ([]entity.Partner, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var partners []PartnerDB

	query := r.q.Rebind(queryGetPartners)

	if err := r.q.SelectContext(ctx, &partners, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPartners execution err")
		return nil, err
	}

	result := make([]entity.Partner, 0, len(partners))
	for _, partner := range partners {
		result = append(result, r.makePartner(partner))
	}

	return result, nil
}

func (r *catalogRepository) GetPartnerByID(ctx context.Context, id string) (entity.Partner, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var partner PartnerDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetPartnerByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPartnerByID named query preparation err")
		return entity.Partner{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&partner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetPartnerByID no rows found")
			return entity.Partner{}, rewards.ErrPartnerNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPartnerByID execution err")

		return entity.Partner{}, err
	}

	return r.makePartner(partner), nil
}

func (r *catalogRepository) GetRewardsByPartnerID(ctx context.Context, partnerID string) ([]entity.Reward, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rewardRows []RewardDB

	argsKV := map[string]interface{}{
		"partner_id": partnerID,
	}

	query, args, err := sqlx.Named(queryGetRewardsByPartnerID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRewardsByPartnerID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rewardRows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRewardsByPartnerID execution err")
		return nil, err
	}

	result := make([]entity.Reward, 0, len(rewardRows))
	for _, reward := range rewardRows {
		result = append(result, r.makeReward(reward))
	}

	return result, nil
}

func (r *catalogRepository) GetRewardByID(ctx context.Context, id string) (entity.Reward, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var reward RewardDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetRewardByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRewardByID named query preparation err")
		return entity.Reward{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&reward); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetRewardByID no rows found")
			return entity.Reward{}, rewards.ErrRewardNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRewardByID execution err")

		return entity.Reward{}, err
	}

	return r.makeReward(reward), nil
}

func (r *catalogRepository) CreateRedemption(ctx context.Context, redemption entity.Redemption) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           redemption.ID,
		"user_id":      redemption.UserID,
		"reward_id":    redemption.RewardID,
		"voucher_code": redemption.VoucherCode,
		"status":       redemption.Status,
		"created_at":   redemption.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRedemption, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRedemption")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating redemption")
		return err
	}

	return nil
}

func (r *catalogRepository) GetRedemptionsByUserID(ctx context.Context, userID string) ([]entity.Redemption, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var redemptions []RedemptionDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetRedemptionsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRedemptionsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &redemptions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRedemptionsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Redemption, 0, len(redemptions))
	for _, redemption := range redemptions {
		result = append(result, entity.Redemption{
			ID:          redemption.ID.String,
			UserID:      redemption.UserID.String,
			RewardID:    redemption.RewardID.String,
			VoucherCode: redemption.VoucherCode.String,
			Status:      redemption.Status.String,
			CreatedAt:   redemption.CreatedAt,
		})
	}

	return result, nil
}

func (r *catalogRepository) makePartner(partner PartnerDB) entity.Partner {
	return entity.Partner{
		ID:        partner.ID.String,
		Name:      partner.Name.String,
		LogoURL:   partner.LogoURL.String,
		IsActive:  partner.IsActive.Bool,
		CreatedAt: partner.CreatedAt,
	}
}

func (r *catalogRepository) makeReward(reward RewardDB) entity.Reward {
	return entity.Reward{
		ID:        reward.ID.String,
		PartnerID: reward.PartnerID.String,
		Name:      reward.Name.String,
		Cost:      int(reward.Cost.Int64),
		IsActive:  reward.IsActive.Bool,
		CreatedAt: reward.CreatedAt,
	}
}
