package classificationService

import (
	"TotemIA/internal/api/classification"
	"TotemIA/internal/api/deposit"
	"TotemIA/internal/classifier"
	contextPkg "TotemIA/pkg/context"
	"TotemIA/pkg/gate"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *classificationService) Classify(ctx context.Context, frame []byte, userID, totemID string) (*classification.ClassifyResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	decision := s.engine.Evaluate(frame, s.allowed, s.minConfidence)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"totem_id":   totemID,
		"accepted":   decision.Accepted,
		"category":   decision.Category,
		"reason":     decision.Reason,
		"rule":       decision.Rule,
		"confidence": decision.Confidence,
		"saturation": decision.Saturation,
	}).Info("Frame classified")

	s.dispatchGate(requestID, decision)

	response := &classification.ClassifyResponse{
		Accepted:   decision.Accepted,
		Category:   decision.Category,
		Confidence: decision.Confidence,
		Reason:     string(decision.Reason),
		Rule:       string(decision.Rule),
		Saturation: decision.Saturation,
	}

	if !decision.Accepted || userID == "" {
		return response, nil
	}

	snapshotURL := s.uploadSnapshot(requestID, frame)

	dep, err := s.depositService.RegisterDeposit(ctx, deposit.RegisterDepositRequest{
		UserID:      userID,
		TotemID:     totemID,
		Category:    decision.Category,
		Confidence:  decision.Confidence,
		Rule:        string(decision.Rule),
		Saturation:  decision.Saturation,
		SnapshotURL: snapshotURL,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to register deposit for accepted cap")
		return nil, err
	}

	response.Points = dep.Points
	response.DepositID = dep.ID
	response.SnapshotURL = snapshotURL

	return response, nil
}

// dispatchGate pushes the verdict to the conveyor controller. The totem keeps
// classifying even when the controller is offline, an operator can still sort
// manually.
func (s *classificationService) dispatchGate(requestID string, decision classifier.Decision) {
	if s.gate == nil {
		return
	}

	ack, err := s.gate.Dispatch(gate.Command{
		Accepted:   decision.Accepted,
		Reason:     string(decision.Reason),
		Category:   decision.Category,
		Confidence: decision.Confidence,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to dispatch gate command")
		return
	}

	if ack.Status != "ok" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     ack.Status,
			"message":    ack.Message,
		}).Warn("Gate controller rejected command")
	}
}

func (s *classificationService) uploadSnapshot(requestID string, frame []byte) string {
	if s.s3 == nil {
		return ""
	}

	url, err := s.s3.UploadBytes("snapshot.jpg", frame, "image/jpeg")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to upload deposit snapshot")
		return ""
	}

	return url
}

func (s *classificationService) Diagnose(ctx context.Context, frame []byte) (*classification.DiagnoseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	decision := s.engine.Evaluate(frame, s.allowed, s.minConfidence)

	response := &classification.DiagnoseResponse{
		Accepted:   decision.Accepted,
		Category:   decision.Category,
		Confidence: decision.Confidence,
		Reason:     string(decision.Reason),
		Rule:       string(decision.Rule),
		Saturation: decision.Saturation,
	}

	if decision.Probabilities != nil {
		for _, score := range decision.Probabilities.TopK(3) {
			response.TopK = append(response.TopK, classification.ClassScoreResponse{
				Label:       score.Label,
				Probability: score.Prob,
			})
		}
	}

	if s.gemini != nil {
		prompt := "Describe the material and color of the object in this image in JSON format."
		if decision.Category != "" {
			prompt = fmt.Sprintf(
				"The classifier labeled this object as a %s bottle cap. Describe the material and color of the object in this image in JSON format.",
				decision.Category,
			)
		}

		description, err := s.gemini.AnalyzeImage(ctx, frame, prompt)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to get Gemini description")
		} else {
			response.Description = description
		}
	}

	return response, nil
}
