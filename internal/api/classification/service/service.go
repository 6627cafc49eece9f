package classificationService

import (
	"TotemIA/internal/api/classification"
	depositService "TotemIA/internal/api/deposit/service"
	"TotemIA/internal/classifier"
	"TotemIA/pkg/gate"
	"TotemIA/pkg/gemini"
	"TotemIA/pkg/s3"
	"TotemIA/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"os"
	"strconv"
	"strings"
)

type IClassificationService interface {
	Classify(ctx context.Context, frame []byte, userID, totemID string) (*classification.ClassifyResponse, error)
	Diagnose(ctx context.Context, frame []byte) (*classification.DiagnoseResponse, error)
}

type classificationService struct {
	log            *logrus.Logger
	engine         *classifier.Engine
	gate           gate.IGate
	gemini         gemini.IGemini
	s3             s3.ItfS3
	depositService depositService.IDepositService
	utils          utils.IUtils
	allowed        map[string]bool
	minConfidence  float64
}

func NewClassificationService(
	log *logrus.Logger,
	engine *classifier.Engine,
	gate gate.IGate,
	gemini gemini.IGemini,
	s3 s3.ItfS3,
	ds depositService.IDepositService,
	utils utils.IUtils,
) IClassificationService {
	return &classificationService{
		log:            log,
		engine:         engine,
		gate:           gate,
		gemini:         gemini,
		s3:             s3,
		depositService: ds,
		utils:          utils,
		allowed:        allowedCategoriesFromEnv(),
		minConfidence:  minConfidenceFromEnv(),
	}
}

func allowedCategoriesFromEnv() map[string]bool {
	allowed := make(map[string]bool)

	raw := os.Getenv("ALLOWED_CATEGORIES")
	if raw == "" {
		for _, label := range classifier.CategoryLabels {
			allowed[label] = true
		}
		return allowed
	}

	for _, label := range strings.Split(raw, ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			allowed[label] = true
		}
	}

	return allowed
}

func minConfidenceFromEnv() float64 {
	raw := os.Getenv("MIN_CONFIDENCE")
	if raw == "" {
		return 0.7
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		logrus.Warnf("Invalid MIN_CONFIDENCE %q, defaulting to 0.7", raw)
		return 0.7
	}

	return parsed
}
