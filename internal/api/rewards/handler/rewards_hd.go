package rewardsHandler

import (
	"TotemIA/internal/api/rewards"
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

func (h *RewardsHandler) GetWallet(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get wallet request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	page := 1
	limit := 20

	if rawPage := ctx.Query("page"); rawPage != "" {
		parsed, err := strconv.Atoi(rawPage)
		if err != nil || parsed < 1 {
			return errHandler.HandleValidationError(ctx, requestID,
				errors.New("invalid page parameter"), ctx.Path())
		}
		page = parsed
	}

	if rawLimit := ctx.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			return errHandler.HandleValidationError(ctx, requestID,
				errors.New("invalid limit parameter"), ctx.Path())
		}
		limit = parsed
	}

	wallet, err := h.rewardsService.GetWallet(c, userData.ID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_wallet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, wallet)
	}
}

func (h *RewardsHandler) GetPartners(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get partners request")

	partners, err := h.rewardsService.GetPartners(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_partners")
	}

	var partnerResponses []rewards.PartnerResponse
	for _, partner := range partners {
		partnerResponses = append(partnerResponses, rewards.PartnerResponse{
			ID:      partner.ID,
			Name:    partner.Name,
			LogoURL: partner.LogoURL,
		})
	}

	response := rewards.PartnerListResponse{
		Partners: partnerResponses,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *RewardsHandler) GetRewardsByPartner(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get rewards by partner request")

	partnerID := ctx.Params("id")
	if partnerID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("partner ID is required"), ctx.Path())
	}

	rewardList, err := h.rewardsService.GetRewardsByPartner(c, partnerID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_rewards_by_partner")
	}

	var rewardResponses []rewards.RewardResponse
	for _, reward := range rewardList {
		rewardResponses = append(rewardResponses, rewards.RewardResponse{
			ID:        reward.ID,
			PartnerID: reward.PartnerID,
			Name:      reward.Name,
			Cost:      reward.Cost,
		})
	}

	response := rewards.RewardListResponse{
		Rewards: rewardResponses,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *RewardsHandler) RedeemReward(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing redeem reward request")

	var req rewards.RedeemRewardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	redemption, err := h.rewardsService.RedeemReward(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "redeem_reward")
	}

	response := rewards.RedemptionResponse{
		ID:          redemption.ID,
		RewardID:    redemption.RewardID,
		VoucherCode: redemption.VoucherCode,
		Status:      redemption.Status,
		CreatedAt:   redemption.CreatedAt.Format(time.RFC3339),
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, response)
	}
}

func (h *RewardsHandler) GetRedemptions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get redemptions request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	redemptions, err := h.rewardsService.GetRedemptions(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_redemptions")
	}

	var redemptionResponses []rewards.RedemptionResponse
	for _, redemption := range redemptions {
		redemptionResponses = append(redemptionResponses, rewards.RedemptionResponse{
			ID:          redemption.ID,
			RewardID:    redemption.RewardID,
			VoucherCode: redemption.VoucherCode,
			Status:      redemption.Status,
			CreatedAt:   redemption.CreatedAt.Format(time.RFC3339),
		})
	}

	response := rewards.RedemptionListResponse{
		Redemptions: redemptionResponses,
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}
