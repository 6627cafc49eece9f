package rewardsRepository

const (
	queryCreateWallet = `
		INSERT INTO wallets (
			id,
			user_id,
			balance,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:balance,
			:created_at,
			:updated_at
		)
	`

	queryGetWalletByUserID = `
		SELECT
			id,
			user_id,
			balance,
			created_at,
			updated_at
		FROM wallets
		WHERE user_id = :user_id
	`

	queryUpdateWalletBalance = `
		UPDATE wallets
		SET
			balance = :balance,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`

	queryCreateWalletTransaction = `
		INSERT INTO wallet_transactions (
			id,
			wallet_id,
			type,
			amount,
			description,
			created_at
		) VALUES (
			:id,
			:wallet_id,
			:type,
			:amount,
			:description,
			:created_at
		)
	`

	queryGetWalletTransactions = `
		SELECT
			id,
			wallet_id,
			type,
			amount,
			description,
			created_at
		FROM wallet_transactions
		WHERE wallet_id = :wallet_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountWalletTransactions = `
		SELECT COUNT(*)
		FROM wallet_transactions
		WHERE wallet_id = :wallet_id
	`

	queryGetPartners = `
		SELECT
			id,
			name,
			logo_url,
			is_active,
			created_at
		FROM partners
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	queryGetPartnerByID = `
		SELECT
			id,
			name,
			logo_url,
			is_active,
			created_at
		FROM partners
		WHERE id = :id
	`

	queryGetRewardsByPartnerID = `
		SELECT
			id,
			partner_id,
			name,
			cost,
			is_active,
			created_at
		FROM rewards
		WHERE partner_id = :partner_id
		  AND is_active = TRUE
		ORDER BY cost ASC
	`

	queryGetRewardByID = `
		SELECT
			id,
			partner_id,
			name,
			cost,
			is_active,
			created_at
		FROM rewards
		WHERE id = :id
	`

	queryCreateRedemption = `
		INSERT INTO redemptions (
			id,
			user_id,
			reward_id,
			voucher_code,
			status,
			created_at
		) VALUES (
			:id,
			:user_id,
			:reward_id,
			:voucher_code,
			:status,
			:created_at
		)
	`

	queryGetRedemptionsByUserID = `
		SELECT
			r.id,
			r.user_id,
			r.reward_id,
			r.voucher_code,
			r.status,
			r.created_at
		FROM redemptions r
		WHERE r.user_id = :user_id
		ORDER BY r.created_at DESC
	`
)
