package rewards

import "TotemIA/pkg/response"

var (
	ErrWalletNotFound     = response.NewError(404, "wallet not found")
	ErrPartnerNotFound    = response.NewError(404, "partner not found")
	ErrRewardNotFound     = response.NewError(404, "reward not found")
	ErrRewardInactive     = response.NewError(400, "reward is not active")
	ErrRedemptionNotFound = response.NewError(404, "redemption not found")
	ErrInsufficientPoints = response.NewError(400, "insufficient points balance")
	ErrRedeemReward       = response.NewError(500, "failed to redeem reward")
)
