package entity

import "time"

type Wallet struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Balance   int       `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type WalletTransactionType string

const (
	WalletTransactionCredit WalletTransactionType = "credit"
	WalletTransactionDebit  WalletTransactionType = "debit"
)

type WalletTransaction struct {
	ID          string    `db:"id"`
	WalletID    string    `db:"wallet_id"`
	Type        string    `db:"type"`
	Amount      int       `db:"amount"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Partner struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	LogoURL   string    `db:"logo_url"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type Reward struct {
	ID        string    `db:"id"`
	PartnerID string    `db:"partner_id"`
	Name      string    `db:"name"`
	Cost      int       `db:"cost"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type RedemptionStatus string

const (
	RedemptionStatusIssued   RedemptionStatus = "issued"
	RedemptionStatusRedeemed RedemptionStatus = "redeemed"
	RedemptionStatusExpired  RedemptionStatus = "expired"
)

type Redemption struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	RewardID    string    `db:"reward_id"`
	VoucherCode string    `db:"voucher_code"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}
