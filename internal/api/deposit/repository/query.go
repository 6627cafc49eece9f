package depositRepository

const (
	queryCreateDeposit = `
		INSERT INTO deposits (
			id,
			user_id,
			totem_id,
			category,
			points,
			confidence,
			rule,
			saturation,
			snapshot_url,
			created_at
		) VALUES (
			:id,
			:user_id,
			:totem_id,
			:category,
			:points,
			:confidence,
			:rule,
			:saturation,
			:snapshot_url,
			:created_at
		)
	`

	queryGetDepositByID = `
		SELECT
			id,
			user_id,
			totem_id,
			category,
			points,
			confidence,
			rule,
			saturation,
			snapshot_url,
			created_at
		FROM deposits
		WHERE id = :id
	`

	queryGetAllDeposits = `
		SELECT
			id,
			user_id,
			totem_id,
			category,
			points,
			confidence,
			rule,
			saturation,
			snapshot_url,
			created_at
		FROM deposits
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryGetCurrentWeekDeposits = `
		SELECT
			id,
			user_id,
			totem_id,
			category,
			points,
			confidence,
			rule,
			saturation,
			snapshot_url,
			created_at
		FROM deposits
		WHERE
			user_id = :user_id
			AND created_at >= date_trunc('week', CURRENT_DATE)
			AND created_at < date_trunc('week', CURRENT_DATE) + interval '1 week'
		ORDER BY created_at DESC
	`

	queryGetCurrentMonthDeposits = `
		SELECT
			id,
			user_id,
			totem_id,
			category,
			points,
			confidence,
			rule,
			saturation,
			snapshot_url,
			created_at
		FROM deposits
		WHERE
			user_id = :user_id
			AND created_at >= date_trunc('month', CURRENT_DATE)
			AND created_at < date_trunc('month', CURRENT_DATE) + interval '1 month'
		ORDER BY created_at DESC
	`

	queryGetUserStatsByCategory = `
		SELECT
			category,
			COUNT(*) AS total_caps,
			COALESCE(SUM(points), 0) AS total_points
		FROM deposits
		WHERE user_id = :user_id
		GROUP BY category
	`

	queryGetLeaderboard = `
		SELECT
			d.user_id,
			u.name,
			COUNT(*) AS total_caps,
			COALESCE(SUM(d.points), 0) AS total_points
		FROM deposits d
		LEFT JOIN users u ON d.user_id = u.id
		GROUP BY d.user_id, u.name
		ORDER BY total_points DESC, total_caps DESC
		LIMIT :limit
	`
)
