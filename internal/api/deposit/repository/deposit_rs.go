package depositRepository

import (
	"TotemIA/internal/api/deposit"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type DepositDB struct {
	ID          sql.NullString  `db:"id"`
	UserID      sql.NullString  `db:"user_id"`
	TotemID     sql.NullString  `db:"totem_id"`
	Category    sql.NullString  `db:"category"`
	Points      sql.NullInt64   `db:"points"`
	Confidence  sql.NullFloat64 `db:"confidence"`
	Rule        sql.NullString  `db:"rule"`
	Saturation  sql.NullFloat64 `db:"saturation"`
	SnapshotURL sql.NullString  `db:"snapshot_url"`
	CreatedAt   time.Time       `db:"created_at"`
}

type categoryStatsDB struct {
	Category    sql.NullString `db:"category"`
	TotalCaps   sql.NullInt64  `db:"total_caps"`
	TotalPoints sql.NullInt64  `db:"total_points"`
}

type leaderboardDB struct {
	UserID      sql.NullString `db:"user_id"`
	Name        sql.NullString `db:"name"`
	TotalCaps   sql.NullInt64  `db:"total_caps"`
	TotalPoints sql.NullInt64  `db:"total_points"`
}

func (r *depositRepository) CreateDeposit(ctx context.Context, dep entity.Deposit) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           dep.ID,
		"user_id":      dep.UserID,
		"totem_id":     dep.TotemID,
		"category":     dep.Category,
		"points":       dep.Points,
		"confidence":   dep.Confidence,
		"rule":         dep.Rule,
		"saturation":   dep.Saturation,
		"snapshot_url": dep.SnapshotURL,
		"created_at":   time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateDeposit, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateDeposit")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating deposit")

		return err
	}

	return nil
}

func (r *depositRepository) GetDepositByID(ctx context.Context, id string) (entity.Deposit, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var dep DepositDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetDepositByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDepositByID named query preparation err")

		return entity.Deposit{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&dep); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetDepositByID no rows found")
			return entity.Deposit{}, deposit.ErrDepositNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDepositByID execution err")
		return entity.Deposit{}, err
	}

	return r.makeDeposit(dep), nil
}

func (r *depositRepository) GetDepositsByPeriod(ctx context.Context, userID string, period string) ([]entity.Deposit, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var deposits []DepositDB
	var queryToUse string

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	switch period {
	case "all":
		queryToUse = queryGetAllDeposits
	case "week":
		queryToUse = queryGetCurrentWeekDeposits
	case "month":
		queryToUse = queryGetCurrentMonthDeposits
	default:
		queryToUse = queryGetAllDeposits
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"period":     period,
		}).Warn("Invalid period provided, defaulting to 'all'")
	}

	query, args, err := sqlx.Named(queryToUse, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"period":     period,
		}).Error("GetDepositsByPeriod named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &deposits, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"period":     period,
		}).Error("GetDepositsByPeriod execution err")
		return nil, err
	}

	result := make([]entity.Deposit, 0, len(deposits))
	for _, dep := range deposits {
		result = append(result, r.makeDeposit(dep))
	}

	return result, nil
}

func (r *depositRepository) GetUserStats(ctx context.Context, userID string) (entity.UserDepositStats, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []categoryStatsDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetUserStatsByCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUserStats named query preparation err")
		return entity.UserDepositStats{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUserStats execution err")
		return entity.UserDepositStats{}, err
	}

	stats := entity.UserDepositStats{
		UserID:     userID,
		ByCategory: make(map[string]int, len(rows)),
	}

	for _, row := range rows {
		stats.TotalCaps += int(row.TotalCaps.Int64)
		stats.TotalPoints += int(row.TotalPoints.Int64)
		stats.ByCategory[row.Category.String] = int(row.TotalCaps.Int64)
	}

	return stats, nil
}

func (r *depositRepository) GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []leaderboardDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetLeaderboard, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLeaderboard named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLeaderboard execution err")
		return nil, err
	}

	result := make([]entity.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.LeaderboardEntry{
			UserID:      row.UserID.String,
			Name:        row.Name.String,
			TotalCaps:   int(row.TotalCaps.Int64),
			TotalPoints: int(row.TotalPoints.Int64),
		})
	}

	return result, nil
}

func (r *depositRepository) makeDeposit(dep DepositDB) entity.Deposit {
	return entity.Deposit{
		ID:          dep.ID.String,
		UserID:      dep.UserID.String,
		TotemID:     dep.TotemID.String,
		Category:    dep.Category.String,
		Points:      int(dep.Points.Int64),
		Confidence:  dep.Confidence.Float64,
		Rule:        dep.Rule.String,
		Saturation:  dep.Saturation.Float64,
		SnapshotURL: dep.SnapshotURL.String,
		CreatedAt:   dep.CreatedAt,
	}
}
