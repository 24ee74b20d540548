package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/combatclasses/internal/model"
)

// JournalRepository stores combat journal entries.
type JournalRepository struct {
	db *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

// Insert appends entries in one COPY.
func (r *JournalRepository) Insert(ctx context.Context, entries []model.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.Time, int64(e.ActorID), e.Actor, string(e.Kind),
			int64(e.WeaponID), int64(e.TargetID), e.Detail,
		})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"combat_journal"},
		[]string{"recorded_at", "actor_id", "actor_name", "kind", "weapon_id", "target_id", "detail"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting %d journal entries: %w", len(entries), err)
	}

	slog.Debug("journal entries saved", "count", len(entries))
	return nil
}

// Recent returns up to limit entries of actorID, newest first.
func (r *JournalRepository) Recent(ctx context.Context, actorID model.FormID, limit int) ([]model.JournalEntry, error) {
	query := `
		SELECT recorded_at, actor_id, actor_name, kind, weapon_id, target_id, detail
		FROM combat_journal
		WHERE actor_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, int64(actorID), limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal for actor %s: %w", actorID, err)
	}
	defer rows.Close()

	entries := make([]model.JournalEntry, 0, limit)
	for rows.Next() {
		var (
			e                     model.JournalEntry
			actor, weapon, target int64
			kind                  string
		)
		if err := rows.Scan(&e.Time, &actor, &e.Actor, &kind, &weapon, &target, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.ActorID = model.FormID(actor)
		e.WeaponID = model.FormID(weapon)
		e.TargetID = model.FormID(target)
		e.Kind = model.JournalKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}

	return entries, nil
}
