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

type WalletDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Balance   sql.NullInt64  `db:"balance"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type WalletTransactionDB struct {
	ID          sql.NullString `db:"id"`
	WalletID    sql.NullString `db:"wallet_id"`
	Type        sql.NullString `db:"type"`
	Amount      sql.NullInt64  `db:"amount"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *walletRepository) CreateWallet(ctx context.Context, wallet entity.Wallet) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         wallet.ID,
		"user_id":    wallet.UserID,
		"balance":    wallet.Balance,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateWallet, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateWallet")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating wallet")
		return err
	}

	return nil
}

func (r *walletRepository) GetWalletByUserID(ctx context.Context, userID string) (entity.Wallet, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var wallet WalletDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetWalletByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetWalletByUserID named query preparation err")
		return entity.Wallet{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetWalletByUserID no rows found")
			return entity.Wallet{}, rewards.ErrWalletNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetWalletByUserID execution err")

		return entity.Wallet{}, err
	}

	return entity.Wallet{
		ID:        wallet.ID.String,
		UserID:    wallet.UserID.String,
		Balance:   int(wallet.Balance.Int64),
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}, nil
}

func (r *walletRepository) UpdateWalletBalance(ctx context.Context, userID string, balance int) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id":    userID,
		"balance":    balance,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateWalletBalance, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateWalletBalance named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateWalletBalance execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateWalletBalance rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateWalletBalance no rows affected")
		return rewards.ErrWalletNotFound
	}

	return nil
}

func (r *walletRepository) CreateWalletTransaction(ctx context.Context, transaction entity.WalletTransaction) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":          transaction.ID,
		"wallet_id":   transaction.WalletID,
		"type":        transaction.Type,
		"amount":      transaction.Amount,
		"description": transaction.Description,
		"created_at":  transaction.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateWalletTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateWalletTransaction")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating wallet transaction")
		return err
	}

	return nil
}

func (r *walletRepository) GetWalletTransactions(ctx context.Context, walletID string, limit, offset int) ([]entity.WalletTransaction, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var transactions []WalletTransactionDB
	var total int

	countArgsKV := map[string]interface{}{
		"wallet_id": walletID,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountWalletTransactions, countArgsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountWalletTransactions named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountWalletTransactions execution err")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"wallet_id": walletID,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(queryGetWalletTransactions, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetWalletTransactions named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &transactions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetWalletTransactions execution err")
		return nil, 0, err
	}

	result := make([]entity.WalletTransaction, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, entity.WalletTransaction{
			ID:          transaction.ID.String,
			WalletID:    transaction.WalletID.String,
			Type:        transaction.Type.String,
			Amount:      int(transaction.Amount.Int64),
			Description: transaction.Description.String,
			CreatedAt:   transaction.CreatedAt,
		})
	}

	return result, total, nil
}
