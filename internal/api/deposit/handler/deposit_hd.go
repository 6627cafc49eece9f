package depositHandler

import (
	"TotemIA/internal/api/deposit"
	contextPkg "TotemIA/pkg/context"
	"TotemIA/pkg/handlerUtil"
	jwtPkg "TotemIA/pkg/jwt"
	"TotemIA/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"strconv"
	"time"
)

func (h *DepositHandler) GetDepositsByPeriod(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get deposits by period request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	period := ctx.Query("period", "all")

	if period != "all" && period != "week" && period != "month" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("invalid period parameter"), ctx.Path())
	}

	deposits, err := h.depositService.GetDepositsByPeriod(c, userData.ID, period)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_deposits_by_period")
	}

	var (
		depositResponses []deposit.DepositResponse
		totalPoints      int
	)

	for _, dep := range deposits {
		depositResponses = append(depositResponses, deposit.DepositResponse{
			ID:          dep.ID,
			TotemID:     dep.TotemID,
			Category:    dep.Category,
			Points:      dep.Points,
			Confidence:  dep.Confidence,
			SnapshotURL: dep.SnapshotURL,
			CreatedAt:   dep.CreatedAt.Format(time.RFC3339),
		})

		totalPoints += dep.Points
	}

	response := deposit.DepositListResponse{
		Deposits:    depositResponses,
		TotalCaps:   len(depositResponses),
		TotalPoints: totalPoints,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *DepositHandler) GetUserStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get user stats request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	stats, err := h.depositService.GetUserStats(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_user_stats")
	}

	response := deposit.StatsResponse{
		TotalCaps:   stats.TotalCaps,
		TotalPoints: stats.TotalPoints,
		ByCategory:  stats.ByCategory,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *DepositHandler) GetLeaderboard(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get leaderboard request")

	limit := 10
	if rawLimit := ctx.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			return errHandler.HandleValidationError(ctx, requestID,
				errors.New("invalid limit parameter"), ctx.Path())
		}
		limit = parsed
	}

	entries, err := h.depositService.GetLeaderboard(c, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_leaderboard")
	}

	var entryResponses []deposit.LeaderboardEntryResponse
	for i, entry := range entries {
		entryResponses = append(entryResponses, deposit.LeaderboardEntryResponse{
			Rank:        i + 1,
			UserID:      entry.UserID,
			Name:        entry.Name,
			TotalCaps:   entry.TotalCaps,
			TotalPoints: entry.TotalPoints,
		})
	}

	response := deposit.LeaderboardResponse{
		Entries: entryResponses,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}
