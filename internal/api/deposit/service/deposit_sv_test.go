package depositService

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"TotemIA/internal/api/deposit"
	depositRepository "TotemIA/internal/api/deposit/repository"
	"TotemIA/internal/api/rewards"
	rewardsRepository "TotemIA/internal/api/rewards/repository"
	"TotemIA/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type depositStoreStub struct {
	deposits  []entity.Deposit
	leaders   []entity.LeaderboardEntry
	createErr error
}

func (s *depositStoreStub) CreateDeposit(_ context.Context, dep entity.Deposit) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.deposits = append(s.deposits, dep)
	return nil
}

func (s *depositStoreStub) GetDepositByID(_ context.Context, _ string) (entity.Deposit, error) {
	return entity.Deposit{}, deposit.ErrDepositNotFound
}

func (s *depositStoreStub) GetDepositsByPeriod(_ context.Context, _ string, _ string) ([]entity.Deposit, error) {
	return s.deposits, nil
}

func (s *depositStoreStub) GetUserStats(_ context.Context, _ string) (entity.UserDepositStats, error) {
	return entity.UserDepositStats{}, nil
}

func (s *depositStoreStub) GetLeaderboard(_ context.Context, _ int) ([]entity.LeaderboardEntry, error) {
	return s.leaders, nil
}

type depositRepoStub struct {
	store *depositStoreStub
}

func (r *depositRepoStub) NewClient(_ bool) (depositRepository.Client, error) {
	return depositRepository.Client{
		Deposit:  r.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type walletStoreStub struct {
	wallet       entity.Wallet
	hasWallet    bool
	transactions []entity.WalletTransaction
}

func (s *walletStoreStub) CreateWallet(_ context.Context, wallet entity.Wallet) error {
	s.wallet = wallet
	s.hasWallet = true
	return nil
}

func (s *walletStoreStub) GetWalletByUserID(_ context.Context, _ string) (entity.Wallet, error) {
	if !s.hasWallet {
		return entity.Wallet{}, rewards.ErrWalletNotFound
	}
	return s.wallet, nil
}

func (s *walletStoreStub) UpdateWalletBalance(_ context.Context, _ string, balance int) error {
	s.wallet.Balance = balance
	return nil
}

func (s *walletStoreStub) CreateWalletTransaction(_ context.Context, transaction entity.WalletTransaction) error {
	s.transactions = append(s.transactions, transaction)
	return nil
}

func (s *walletStoreStub) GetWalletTransactions(_ context.Context, _ string, _, _ int) ([]entity.WalletTransaction, int, error) {
	return s.transactions, len(s.transactions), nil
}

type rewardsRepoStub struct {
	wallet  *walletStoreStub
	commits int
}

func (r *rewardsRepoStub) NewClient(_ bool) (rewardsRepository.Client, error) {
	return rewardsRepository.Client{
		Wallet:   r.wallet,
		Commit:   func() error { r.commits++; return nil },
		Rollback: func() error { return nil },
	}, nil
}

type utilsStub struct {
	n int
}

func (u *utilsStub) NewULIDFromTimestamp(_ time.Time) (string, error) {
	u.n++
	return fmt.Sprintf("01TEST%020d", u.n), nil
}

func (u *utilsStub) ValidateImageFile(_ *multipart.FileHeader) error { return nil }

func (u *utilsStub) ReadMultipartFile(_ multipart.File) ([]byte, error) { return nil, nil }

func (u *utilsStub) DecodeBase64Image(_ string) ([]byte, error) { return nil, nil }

type redisStub struct {
	values map[string]string
}

func (r *redisStub) Set(_ context.Context, key string, value string, _ time.Duration) error {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[key] = value
	return nil
}

func (r *redisStub) Get(_ context.Context, key string) (string, error) {
	if value, ok := r.values[key]; ok {
		return value, nil
	}
	return "", errors.New("redis: nil")
}

func (r *redisStub) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func newTestService(store *depositStoreStub, wallet *walletStoreStub) (IDepositService, *rewardsRepoStub, *redisStub) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rewardsRepo := &rewardsRepoStub{wallet: wallet}
	cache := &redisStub{}

	svc := NewDepositService(logger, &depositRepoStub{store: store}, rewardsRepo, cache, &utilsStub{})
	return svc, rewardsRepo, cache
}

func TestRegisterDeposit(t *testing.T) {
	tests := []struct {
		name            string
		category        string
		startBalance    int
		hasWallet       bool
		expectedPoints  int
		expectedBalance int
	}{
		{
			name:            "common color credits base points into existing wallet",
			category:        "Vermelho",
			startBalance:    20,
			hasWallet:       true,
			expectedPoints:  5,
			expectedBalance: 25,
		},
		{
			name:            "rare color credits more points",
			category:        "Laranja",
			startBalance:    0,
			hasWallet:       true,
			expectedPoints:  8,
			expectedBalance: 8,
		},
		{
			name:            "transparent cap is the most valuable",
			category:        "Transparente",
			startBalance:    3,
			hasWallet:       true,
			expectedPoints:  10,
			expectedBalance: 13,
		},
		{
			name:            "first deposit creates the wallet before crediting",
			category:        "Azul",
			hasWallet:       false,
			expectedPoints:  5,
			expectedBalance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &depositStoreStub{}
			wallet := &walletStoreStub{
				wallet:    entity.Wallet{ID: "wallet-1", UserID: "user-1", Balance: tt.startBalance},
				hasWallet: tt.hasWallet,
			}
			svc, rewardsRepo, _ := newTestService(store, wallet)

			dep, err := svc.RegisterDeposit(context.Background(), deposit.RegisterDepositRequest{
				UserID:   "user-1",
				TotemID:  "totem-7",
				Category: tt.category,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPoints, dep.Points)
			require.Len(t, store.deposits, 1)
			assert.Equal(t, tt.category, store.deposits[0].Category)

			assert.True(t, wallet.hasWallet)
			assert.Equal(t, tt.expectedBalance, wallet.wallet.Balance)
			require.Len(t, wallet.transactions, 1)
			assert.Equal(t, string(entity.WalletTransactionCredit), wallet.transactions[0].Type)
			assert.Equal(t, tt.expectedPoints, wallet.transactions[0].Amount)
			assert.Equal(t, 1, rewardsRepo.commits)
		})
	}
}

func TestRegisterDeposit_InvalidCategory(t *testing.T) {
	store := &depositStoreStub{}
	wallet := &walletStoreStub{}
	svc, rewardsRepo, _ := newTestService(store, wallet)

	_, err := svc.RegisterDeposit(context.Background(), deposit.RegisterDepositRequest{
		UserID:   "user-1",
		TotemID:  "totem-7",
		Category: "Dourado",
	})

	assert.ErrorIs(t, err, deposit.ErrInvalidCategory)
	assert.Empty(t, store.deposits)
	assert.Empty(t, wallet.transactions)
	assert.Equal(t, 0, rewardsRepo.commits)
}

func TestGetLeaderboard_CachesResult(t *testing.T) {
	store := &depositStoreStub{
		leaders: []entity.LeaderboardEntry{
			{UserID: "user-1", Name: "Maria", TotalCaps: 12, TotalPoints: 80},
		},
	}
	svc, _, cache := newTestService(store, &walletStoreStub{})

	first, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.NotEmpty(t, cache.values)

	// The second call must come from the cache, not the repository.
	store.leaders = nil

	second, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
