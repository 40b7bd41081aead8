// Package catalogrepo stores the catalog in PostgreSQL. Records are kept as
// JSONB documents next to the few columns used for lookups and ordering.
package catalogrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/dmitrijs2005/modelcatalog/internal/dbx"
	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
)

type PostgresRepository struct {
	db *sql.DB
}

var _ catalog.Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListResources(ctx context.Context, kind models.Kind) ([]*models.Resource, error) {
	query :=
		`SELECT data FROM resources
		 WHERE kind = $1
		 ORDER BY date_created, id`

	return dbx.QueryAll(ctx, r.db, scanDocument[*models.Resource], query, string(kind))
}

func (r *PostgresRepository) GetResource(ctx context.Context, kind models.Kind, id string) (*models.Resource, error) {
	query :=
		`SELECT data FROM resources
		 WHERE kind = $1 AND id = $2`

	res := &models.Resource{}
	if err := scanJSON(r.db.QueryRowContext(ctx, query, string(kind), id), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *PostgresRepository) ResourceIDByAlias(ctx context.Context, kind models.Kind, alias string) (string, error) {
	if alias == "" {
		return "", common.ErrorNotFound
	}
	query :=
		`SELECT id FROM resources
		 WHERE kind = $1 AND alias = $2`

	var id string
	if err := r.db.QueryRowContext(ctx, query, string(kind), alias).Scan(&id); err != nil {
		return "", notFound(err)
	}
	return id, nil
}

func (r *PostgresRepository) SaveResource(ctx context.Context, kind models.Kind, res *models.Resource) error {
	if err := kind.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrorValidation)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO resources (kind, id, alias, date_created, data)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		 ON CONFLICT (kind, id) DO UPDATE
		 SET alias = EXCLUDED.alias, data = EXCLUDED.data`

	if _, err := r.db.ExecContext(ctx, query, string(kind), res.ID, res.Alias, res.DateCreated, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListResults(ctx context.Context) ([]*models.ExtendedResult, error) {
	query :=
		`SELECT data FROM results
		 ORDER BY timestamp, id`

	return dbx.QueryAll(ctx, r.db, scanDocument[*models.ExtendedResult], query)
}

func (r *PostgresRepository) GetResult(ctx context.Context, id string) (*models.ExtendedResult, error) {
	res := &models.ExtendedResult{}
	if err := scanJSON(r.db.QueryRowContext(ctx, `SELECT data FROM results WHERE id = $1`, id), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *PostgresRepository) SaveResult(ctx context.Context, res *models.ExtendedResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO results (id, timestamp, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET timestamp = EXCLUDED.timestamp, data = EXCLUDED.data`

	if _, err := r.db.ExecContext(ctx, query, res.ID, res.Timestamp, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListComments(ctx context.Context, about string) ([]models.Comment, error) {
	query :=
		`SELECT data FROM comments
		 WHERE about = $1
		 ORDER BY timestamp, id`

	return dbx.QueryAll(ctx, r.db, scanDocument[models.Comment], query, about)
}

func (r *PostgresRepository) GetComment(ctx context.Context, id string) (models.Comment, error) {
	var c models.Comment
	if err := scanJSON(r.db.QueryRowContext(ctx, `SELECT data FROM comments WHERE id = $1`, id), &c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (r *PostgresRepository) SaveComment(ctx context.Context, c models.Comment) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO comments (id, about, timestamp, data)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET data = EXCLUDED.data`

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.About, c.Timestamp, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
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

type vocabularyRow struct {
	field string
	vals  []string
}

func scanVocabularyRow(rows *sql.Rows) (vocabularyRow, error) {
	var (
		row vocabularyRow
		raw []byte
	)
	if err := rows.Scan(&row.field, &raw); err != nil {
		return row, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(raw, &row.vals); err != nil {
		return row, fmt.Errorf("decode vocabulary %q: %w", row.field, err)
	}
	return row, nil
}

func (r *PostgresRepository) Vocabulary(ctx context.Context) (models.Vocabulary, error) {
	rows, err := dbx.QueryAll(ctx, r.db, scanVocabularyRow, `SELECT field, vals FROM vocabulary`)
	if err != nil {
		return nil, err
	}

	vocab := models.Vocabulary{}
	for _, row := range rows {
		vocab[row.field] = row.vals
	}
	return vocab, nil
}

// SetVocabulary replaces the whole vocabulary in one transaction.
func (r *PostgresRepository) SetVocabulary(ctx context.Context, v models.Vocabulary) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.Querier) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary`); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		for field, vals := range v {
			data, err := json.Marshal(vals)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO vocabulary (field, vals) VALUES ($1, $2)`, field, data); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) Projects(ctx context.Context) ([]catalog.Project, error) {
	query := `SELECT project_id, editable FROM projects ORDER BY project_id`

	return dbx.QueryAll(ctx, r.db, func(rows *sql.Rows) (catalog.Project, error) {
		var p catalog.Project
		if err := rows.Scan(&p.ProjectID, &p.Editable); err != nil {
			return p, fmt.Errorf("db error: %w", err)
		}
		return p, nil
	}, query)
}

func (r *PostgresRepository) SaveProject(ctx context.Context, p catalog.Project) error {
	query :=
		`INSERT INTO projects (project_id, editable)
		 VALUES ($1, $2)
		 ON CONFLICT (project_id) DO UPDATE
		 SET editable = EXCLUDED.editable`

	if _, err := r.db.ExecContext(ctx, query, p.ProjectID, p.Editable); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanJSON reads a single JSONB column into v.
func scanJSON(s scanner, v any) error {
	var raw []byte
	if err := s.Scan(&raw); err != nil {
		return notFound(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// scanDocument decodes the JSONB column of the current row into a T.
func scanDocument[T any](rows *sql.Rows) (T, error) {
	var v T
	err := scanJSON(rows, &v)
	return v, err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
