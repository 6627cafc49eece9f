package speechService

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	authRepository "TotemIA/internal/api/auth/repository"
	"TotemIA/internal/api/deposit"
	"TotemIA/internal/api/speech"
	"TotemIA/internal/entity"
	chatGPT "TotemIA/pkg/openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatGPTStub struct {
	script  string
	err     error
	calls   int
	lastReq chatGPT.EncouragementRequest
}

func (c *chatGPTStub) GenerateEncouragement(_ context.Context, req chatGPT.EncouragementRequest) (string, error) {
	c.calls++
	c.lastReq = req
	return c.script, c.err
}

type statsOnlyDepositService struct {
	stats entity.UserDepositStats
}

func (d statsOnlyDepositService) RegisterDeposit(_ context.Context, _ deposit.RegisterDepositRequest) (entity.Deposit, error) {
	return entity.Deposit{}, nil
}

func (d statsOnlyDepositService) GetDepositsByPeriod(_ context.Context, _ string, _ string) ([]entity.Deposit, error) {
	return nil, nil
}

func (d statsOnlyDepositService) GetUserStats(_ context.Context, _ string) (entity.UserDepositStats, error) {
	return d.stats, nil
}

func (d statsOnlyDepositService) GetLeaderboard(_ context.Context, _ int) ([]entity.LeaderboardEntry, error) {
	return nil, nil
}

type userStoreStub struct {
	user entity.User
}

func (s *userStoreStub) CreateUser(_ context.Context, _ entity.User) error { return nil }

func (s *userStoreStub) GetByID(_ context.Context, _ string) (entity.User, error) {
	return s.user, nil
}

func (s *userStoreStub) GetByPhoneNumber(_ context.Context, _ string) (entity.User, error) {
	return s.user, nil
}

func (s *userStoreStub) GetByEmail(_ context.Context, _ string) (entity.User, error) {
	return s.user, nil
}

func (s *userStoreStub) UpdateUser(_ context.Context, _ entity.User) error { return nil }

func (s *userStoreStub) UpdateProfilePhoto(_ context.Context, _ string, _ string) error { return nil }

func (s *userStoreStub) DeleteUser(_ context.Context, _ string) error { return nil }

type authRepoStub struct {
	users *userStoreStub
}

func (r *authRepoStub) NewClient(_ bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    r.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type s3Stub struct{}

func (s *s3Stub) UploadFile(_ *multipart.FileHeader) (string, error) { return "", nil }

func (s *s3Stub) UploadBytes(_ string, _ []byte, _ string) (string, error) {
	return "https://bucket.s3.amazonaws.com/audio.mp3", nil
}

func (s *s3Stub) PresignUrl(fileName string) (string, error) { return fileName, nil }

func (s *s3Stub) DeleteFile(_ string) error { return nil }

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

func newTestService(gpt *chatGPTStub, cache *redisStub, stats entity.UserDepositStats) ISpeechService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewSpeechService(
		logger,
		gpt,
		nil,
		&s3Stub{},
		cache,
		statsOnlyDepositService{stats: stats},
		&authRepoStub{users: &userStoreStub{user: entity.User{ID: "user-1", Name: "Maria"}}},
	)
}

func TestGetEncouragement_GeneratesScriptFromStats(t *testing.T) {
	gpt := &chatGPTStub{script: "Parabéns, Maria! Já são 12 tampinhas recicladas."}
	cache := &redisStub{}
	svc := newTestService(gpt, cache, entity.UserDepositStats{
		UserID:      "user-1",
		TotalCaps:   12,
		TotalPoints: 80,
	})

	result, err := svc.GetEncouragement(context.Background(), "user-1", "Azul")

	require.NoError(t, err)
	assert.Equal(t, gpt.script, result.Text)
	assert.Empty(t, result.AudioURL)

	assert.Equal(t, 1, gpt.calls)
	assert.Equal(t, "Maria", gpt.lastReq.UserName)
	assert.Equal(t, "Azul", gpt.lastReq.CapColor)
	assert.Equal(t, 12, gpt.lastReq.TotalCaps)
	assert.Equal(t, 80, gpt.lastReq.TotalPoints)

	assert.Contains(t, cache.values, "speech:encouragement:user-1:Azul")
}

func TestGetEncouragement_CacheHitSkipsGeneration(t *testing.T) {
	gpt := &chatGPTStub{script: "should not be called"}
	cache := &redisStub{}
	svc := newTestService(gpt, cache, entity.UserDepositStats{UserID: "user-1"})

	cached := speech.EncouragementResponse{Text: "Você é incrível!"}
	encoded, err := json.MarshalToString(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), "speech:encouragement:user-1:Verde", encoded, time.Minute))

	result, err := svc.GetEncouragement(context.Background(), "user-1", "Verde")

	require.NoError(t, err)
	assert.Equal(t, cached.Text, result.Text)
	assert.Equal(t, 0, gpt.calls)
}

func TestGetEncouragement_ScriptFailure(t *testing.T) {
	gpt := &chatGPTStub{err: errors.New("openai unavailable")}
	svc := newTestService(gpt, &redisStub{}, entity.UserDepositStats{UserID: "user-1"})

	_, err := svc.GetEncouragement(context.Background(), "user-1", "Azul")

	assert.ErrorIs(t, err, speech.ErrScriptGeneration)
}
