package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) LockPair(ctx context.Context, userID, featureID int64) error {
	// ids are SERIAL, so both fit the (int4, int4) advisory lock key space
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, userID, featureID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, featureID int64) (bool, error) {
	query := `DELETE FROM votes WHERE user_id = $1 AND feature_id = $2`
	return r.execAffected(ctx, query, userID, featureID)
}

func (r *PostgresRepository) Insert(ctx context.Context, userID, featureID int64) (bool, error) {
	query :=
		`INSERT INTO votes (user_id, feature_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, feature_id) DO NOTHING
		 `
	return r.execAffected(ctx, query, userID, featureID)
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, featureID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM votes WHERE user_id = $1 AND feature_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, featureID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) CountFor(ctx context.Context, featureID int64) (int64, error) {
	query :=
		`SELECT (SELECT COUNT(*) FROM votes v WHERE v.feature_id = f.id)
		 FROM features f
		 WHERE f.id = $1
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, featureID).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByFeature(ctx context.Context, featureID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE feature_id = $1`, featureID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
