package config

import (
	"TotemIA/database/postgres"
	authHandler "TotemIA/internal/api/auth/handler"
	authRepository "TotemIA/internal/api/auth/repository"
	authService "TotemIA/internal/api/auth/service"
	classificationHandler "TotemIA/internal/api/classification/handler"
	classificationService "TotemIA/internal/api/classification/service"
	depositHandler "TotemIA/internal/api/deposit/handler"
	depositRepository "TotemIA/internal/api/deposit/repository"
	depositService "TotemIA/internal/api/deposit/service"
	rewardsHandler "TotemIA/internal/api/rewards/handler"
	rewardsRepository "TotemIA/internal/api/rewards/repository"
	rewardsService "TotemIA/internal/api/rewards/service"
	speechHandler "TotemIA/internal/api/speech/handler"
	speechService "TotemIA/internal/api/speech/service"
	"TotemIA/internal/classifier"
	"TotemIA/internal/middleware"
	"TotemIA/pkg/audio"
	"TotemIA/pkg/bcrypt"
	"TotemIA/pkg/gate"
	"TotemIA/pkg/gemini"
	"TotemIA/pkg/openai"
	"TotemIA/pkg/redis"
	"TotemIA/pkg/s3"
	"TotemIA/pkg/utils"
	"TotemIA/pkg/whatsapp"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	redisServer    redis.IRedis
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	chatGPTClient  openai.IChatGPT
	ttsService     *audio.TTSService
	gateClient     gate.IGate
	modelEngine    *classifier.Engine
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithChatGPTClient() ServerOption {
	return func(s *Server) error {
		s.chatGPTClient = openai.NewChatGPT()
		return nil
	}
}

func WithTTSService() ServerOption {
	return func(s *Server) error {
		s.ttsService = audio.NewTTSService(os.Getenv("ELEVENLABS_API_KEY"), os.Getenv("ELEVENLABS_VOICE_ID"))
		return nil
	}
}

func WithGateClient() ServerOption {
	return func(s *Server) error {
		s.gateClient = gate.NewGateClient()
		return nil
	}
}

// WithModelEngine loads the serialized classifier models from MODEL_DIR.
// The totem cannot make decisions without them, so a load failure aborts startup.
func WithModelEngine() ServerOption {
	return func(s *Server) error {
		dir := os.Getenv("MODEL_DIR")
		if dir == "" {
			dir = "models"
		}

		bundle, err := classifier.LoadModelBundle(dir)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load model bundle from %s: %v", dir, err)
			}
			return fmt.Errorf("failed to load model bundle: %w", err)
		}
		s.modelEngine = classifier.NewEngine(bundle)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.s3Client, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware, s.s3Client)

	// Rewards Domain
	rewardsRepo := rewardsRepository.New(s.db, s.log)
	rewardsServices := rewardsService.NewRewardsService(s.log, rewardsRepo, authRepo, s.whatsappClient, s.utils)
	rewardsHandlers := rewardsHandler.New(s.log, s.validator, s.middleware, rewardsServices)

	// Deposit Domain
	depositRepo := depositRepository.New(s.db, s.log)
	depositServices := depositService.NewDepositService(s.log, depositRepo, rewardsRepo, s.redisServer, s.utils)
	depositHandlers := depositHandler.New(s.log, s.validator, s.middleware, depositServices)

	// Classification Domain
	classificationServices := classificationService.NewClassificationService(s.log, s.modelEngine, s.gateClient, s.geminiClient, s.s3Client, depositServices, s.utils)
	classificationHandlers := classificationHandler.New(s.log, s.validator, s.middleware, classificationServices, s.utils)

	// Speech Domain
	speechServices := speechService.NewSpeechService(s.log, s.chatGPTClient, s.ttsService, s.s3Client, s.redisServer, depositServices, authRepo)
	speechHandlers := speechHandler.New(s.log, s.validator, s.middleware, speechServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, rewardsHandlers, depositHandlers, classificationHandlers, speechHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappClient != nil {
			s.whatsappClient.Disconnect()
		}
		if s.gateClient != nil {
			s.gateClient.Close()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
