package rewardsRepository

import (
	"TotemIA/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Wallet:   &walletRepository{q: sqlExecutor, log: r.log},
		Catalog:  &catalogRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Wallet interface {
		CreateWallet(ctx context.Context, wallet entity.Wallet) error
		GetWalletByUserID(ctx context.Context, userID string) (entity.Wallet, error)
		UpdateWalletBalance(ctx context.Context, userID string, balance int) error
		CreateWalletTransaction(ctx context.Context, transaction entity.WalletTransaction) error
		GetWalletTransactions(ctx context.Context, walletID string, limit, offset int) ([]entity.WalletTransaction, int, error)
	}

	Catalog interface {
		GetPartners(ctx context.Context) ([]entity.Partner, error)
		GetPartnerByID(ctx context.Context, id string) (entity.Partner, error)
		GetRewardsByPartnerID(ctx context.Context, partnerID string) ([]entity.Reward, error)
		GetRewardByID(ctx context.Context, id string) (entity.Reward, error)
		CreateRedemption(ctx context.Context, redemption entity.Redemption) error
		GetRedemptionsByUserID(ctx context.Context, userID string) ([]entity.Redemption, error)
	}

	Commit   func() error
	Rollback func() error
}

type walletRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type catalogRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
