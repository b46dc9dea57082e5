package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/rawdata"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type RawDataRepository struct {
	store *Store
}

func NewRawDataRepository(store *Store) *RawDataRepository {
	return &RawDataRepository{store: store}
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.WithTx(ctx, func(ctx context.Context) error {
		for _, item := range items {
			insertModel := rawPayloadInsertModel{
				Source:      item.Source,
				EntityType:  item.EntityType,
				EntityKey:   item.EntityKey,
				SeasonID:    item.SeasonID,
				Payload:     item.PayloadJSON,
				PayloadHash: item.PayloadHash,
			}
			query, args, err := qb.InsertModel("scrape_payloads", insertModel, `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    ingested_at = NOW()`)
			if err != nil {
				return fmt.Errorf("build upsert raw payload query: %w", err)
			}
			if _, err := r.store.session(ctx).ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
			}
		}
		return nil
	})
}

type rawPayloadInsertModel struct {
	Source      string `db:"source"`
	EntityType  string `db:"entity_type"`
	EntityKey   string `db:"entity_key"`
	SeasonID    *int64 `db:"season_id"`
	Payload     string `db:"payload"`
	PayloadHash string `db:"payload_hash"`
}
