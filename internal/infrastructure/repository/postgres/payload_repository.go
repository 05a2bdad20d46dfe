package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	qb "github.com/riskibarqy/sportsbet-api/internal/platform/querybuilder"
)

const insertPayloadsConflictClause = `ON CONFLICT (source, endpoint, page, payload_hash) DO NOTHING`

type PayloadRepository struct {
	db *sqlx.DB
}

func NewPayloadRepository(db *sqlx.DB) *PayloadRepository {
	return &PayloadRepository{db: db}
}

// InsertMany stores raw pages in one statement. Pages already archived with the same hash are
// skipped.
func (r *PayloadRepository) InsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	query, args, err := buildInsertPayloadsQuery(items)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert provider payloads count=%d: %w", len(items), err)
	}

	return nil
}

func buildInsertPayloadsQuery(items []rawdata.Payload) (string, []any, error) {
	query, args, err := qb.InsertModels(providerPayloadsTable, toProviderPayloadInsertModels(items), insertPayloadsConflictClause)
	if err != nil {
		return "", nil, fmt.Errorf("build insert provider payloads query: %w", err)
	}
	return query, args, nil
}
