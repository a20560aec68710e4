package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opencode-ai/prism/internal/session"
)

// Snapshot repository errors.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("invalid snapshot record")
)

// SnapshotRecord is one stored session snapshot.
type SnapshotRecord struct {
	ID        string
	Profile   string
	Version   string
	Snapshot  session.Snapshot
	CreatedAt time.Time
}

// SnapshotRepository handles session snapshot persistence.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save appends a snapshot for a profile.
func (r *SnapshotRepository) Save(ctx context.Context, profile string, snap session.Snapshot) (*SnapshotRecord, error) {
	if profile == "" {
		return nil, ErrInvalidSnapshot
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	record := &SnapshotRecord{
		ID:        uuid.New().String(),
		Profile:   profile,
		Version:   snap.Version,
		Snapshot:  snap,
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, profile, version, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		record.ID,
		record.Profile,
		record.Version,
		string(payload),
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return record, nil
}

// Latest returns the most recent snapshot for a profile.
func (r *SnapshotRepository) Latest(ctx context.Context, profile string) (*SnapshotRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, profile, version, payload, created_at
		FROM snapshots WHERE profile = ?
		ORDER BY created_at DESC LIMIT 1
	`, profile)

	return r.scanSnapshot(row)
}

// List returns up to limit snapshots for a profile, newest first.
func (r *SnapshotRepository) List(ctx context.Context, profile string, limit int) ([]*SnapshotRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile, version, payload, created_at
		FROM snapshots WHERE profile = ?
		ORDER BY created_at DESC LIMIT ?
	`, profile, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	records := make([]*SnapshotRecord, 0)
	for rows.Next() {
		record, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Prune deletes all but the newest keep snapshots for a profile and returns
// the number removed.
func (r *SnapshotRepository) Prune(ctx context.Context, profile string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE profile = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE profile = ?
			ORDER BY created_at DESC LIMIT ?
		)
	`, profile, profile, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SnapshotRepository) scanSnapshot(row rowScanner) (*SnapshotRecord, error) {
	var record SnapshotRecord
	var payload, createdAt string

	err := row.Scan(&record.ID, &record.Profile, &record.Version, &payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &record.Snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = ts
	}

	return &record, nil
}
