package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/jackc/pgx/v5"
)

// JournalEntry records one write to a save slot.
type JournalEntry struct {
	Slot     string
	Size     int
	Checksum uint64
}

// PGSlotStore keeps slots in PostgreSQL. Every write is journaled in the
// same transaction as the slot upsert.
type PGSlotStore struct {
	db *DB
}

var _ SlotStore = (*PGSlotStore)(nil)

func NewPGSlotStore(db *DB) *PGSlotStore {
	return &PGSlotStore{db: db}
}

func (s *PGSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT data FROM save_slots WHERE slot = $1`, key,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %s: %w", key, err)
	}
	return blob, nil
}

func (s *PGSlotStore) Set(ctx context.Context, key string, blob []byte) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("slot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO save_slots (slot, data, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		key, blob,
	); err != nil {
		return fmt.Errorf("slot upsert %s: %w", key, err)
	}
	e := JournalEntry{Slot: key, Size: len(blob), Checksum: xxhash.Sum64(blob)}
	if _, err := tx.Exec(ctx,
		`INSERT INTO save_journal (slot, size, checksum) VALUES ($1, $2, $3)`,
		e.Slot, e.Size, int64(e.Checksum),
	); err != nil {
		return fmt.Errorf("journal insert %s: %w", key, err)
	}
	return tx.Commit(ctx)
}

func (s *PGSlotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1`, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (s *PGSlotStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT slot FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return keys, nil
}
