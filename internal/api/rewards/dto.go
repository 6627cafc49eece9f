package rewards

type RedeemRewardRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	RewardID string `json:"reward_id" validate:"required"`
}

type WalletResponse struct {
	Balance      int                         `json:"balance"`
	Transactions []WalletTransactionResponse `json:"transactions"`
	Total        int                         `json:"total"`
	Page         int                         `json:"page"`
	Limit        int                         `json:"limit"`
}

type WalletTransactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type PartnerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

type PartnerListResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

type RewardResponse struct {
	ID        string `json:"id"`
	PartnerID string `json:"partner_id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
}

type RewardListResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}

type RedemptionResponse struct {
	ID          string `json:"id"`
	RewardID    string `json:"reward_id"`
	RewardName  string `json:"reward_name,omitempty"`
	PartnerName string `json:"partner_name,omitempty"`
	VoucherCode string `json:"voucher_code"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type RedemptionListResponse struct {
	Redemptions []RedemptionResponse `json:"redemptions"`
}
