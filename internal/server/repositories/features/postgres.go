package features

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
)

// summarySelect yields one FeatureSummary per feature. $1 is the caller id
// or NULL; comparing against NULL never matches, so anonymous listings
// get user_voted = false everywhere.
const summarySelect = `SELECT f.id, f.user_id, f.title, f.description, f.status, f.created_at, f.updated_at,
		u.username,
		COUNT(v.user_id) AS vote_count,
		EXISTS (SELECT 1 FROM votes cv WHERE cv.feature_id = f.id AND cv.user_id = $1) AS user_voted
	FROM features f
	JOIN users u ON u.id = f.user_id
	LEFT JOIN votes v ON v.feature_id = f.id
	`

const (
	orderByVotes   = `ORDER BY vote_count DESC, f.id ASC`
	orderByRecency = `ORDER BY f.created_at DESC, f.id DESC`
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Feature) (*models.Feature, error) {
	query :=
		`INSERT INTO features (title, description, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, status, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, f.Title, f.Description, f.UserID).
		Scan(&f.ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return f, nil
}

func (r *PostgresRepository) GetSummary(ctx context.Context, id int64, callerID *int64) (*models.FeatureSummary, error) {
	query := summarySelect + `WHERE f.id = $2
	GROUP BY f.id, u.username`

	row := r.db.QueryRowContext(ctx, query, nullableID(callerID), id)

	s, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, q models.ListQuery) ([]*models.FeatureSummary, error) {
	order := orderByRecency
	if q.Sort == models.SortByVotes {
		order = orderByVotes
	}

	query := summarySelect + `GROUP BY f.id, u.username
	` + order + `
	OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, nullableID(q.CallerID), q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.FeatureSummary, 0, q.Limit)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) LockForShare(ctx context.Context, id int64) error {
	query := `SELECT id FROM features WHERE id = $1 FOR SHARE`

	var got int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) OwnerForUpdate(ctx context.Context, id int64) (int64, error) {
	query := `SELECT user_id FROM features WHERE id = $1 FOR UPDATE`

	var owner int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return owner, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM features WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(s scanner) (*models.FeatureSummary, error) {
	fs := &models.FeatureSummary{}
	err := s.Scan(&fs.ID, &fs.UserID, &fs.Title, &fs.Description, &fs.Status, &fs.CreatedAt, &fs.UpdatedAt,
		&fs.UserName, &fs.VoteCount, &fs.UserVoted)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
