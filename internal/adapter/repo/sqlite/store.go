// Package sqlite is the embedded storage backend. It keeps the pet document
// as JSON and the wallet and study aggregates as flat rows, which is enough
// for single-node deployments without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

const schema = `
CREATE TABLE IF NOT EXISTS pets (
  owner_id TEXT PRIMARY KEY,
  id       TEXT NOT NULL,
  data     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS wallets (
  owner_id TEXT PRIMARY KEY,
  coins    INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS wallet_ledger (
  id       INTEGER PRIMARY KEY AUTOINCREMENT,
  owner_id TEXT NOT NULL,
  amount   INTEGER NOT NULL,
  reason   TEXT
);
CREATE TABLE IF NOT EXISTS study_stats (
  owner_id            TEXT PRIMARY KEY,
  total_study_hours   REAL NOT NULL DEFAULT 0,
  streak_days         INTEGER NOT NULL DEFAULT 0,
  quests_completed    INTEGER NOT NULL DEFAULT 0,
  avg_session_minutes REAL NOT NULL DEFAULT 0
);
`

// Open opens (or creates) the database file and applies the schema. The
// driver is pure Go, so ":memory:" works everywhere, tests included.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// The driver serializes writes; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

type PetRepo struct {
	db *sql.DB
}

func NewPetRepo(db *sql.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) GetByOwnerID(ctx context.Context, ownerID string) (pet.Pet, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM pets WHERE owner_id = ?`, ownerID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return pet.Pet{}, ports.ErrNotFound
	}
	if err != nil {
		return pet.Pet{}, err
	}
	var p pet.Pet
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return pet.Pet{}, fmt.Errorf("decode pet for owner %s: %w", ownerID, err)
	}
	return p, nil
}

func (r PetRepo) Save(ctx context.Context, p pet.Pet) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pet %s: %w", p.ID, err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO pets (owner_id, id, data) VALUES (?, ?, ?)
ON CONFLICT(owner_id) DO UPDATE SET id = excluded.id, data = excluded.data`,
		p.OwnerID, p.ID, string(data))
	return err
}

type Wallet struct {
	db *sql.DB
}

func NewWallet(db *sql.DB) Wallet {
	return Wallet{db: db}
}

func (w Wallet) Spend(ctx context.Context, ownerID string, amount int, reason string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE wallets SET coins = coins - ? WHERE owner_id = ? AND coins >= ?`,
		amount, ownerID, amount)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrInsufficientFunds
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_ledger (owner_id, amount, reason) VALUES (?, ?, ?)`,
		ownerID, -amount, reason); err != nil {
		return err
	}
	return tx.Commit()
}

func (w Wallet) Deposit(ctx context.Context, ownerID string, amount int, reason string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO wallets (owner_id, coins) VALUES (?, ?)
ON CONFLICT(owner_id) DO UPDATE SET coins = coins + excluded.coins`,
		ownerID, amount); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_ledger (owner_id, amount, reason) VALUES (?, ?, ?)`,
		ownerID, amount, reason); err != nil {
		return err
	}
	return tx.Commit()
}

type StatsProvider struct {
	db *sql.DB
}

func NewStatsProvider(db *sql.DB) StatsProvider {
	return StatsProvider{db: db}
}

func (p StatsProvider) Snapshot(ctx context.Context, ownerID string) (pet.StudyStatsSnapshot, error) {
	var snap pet.StudyStatsSnapshot
	err := p.db.QueryRowContext(ctx, `
SELECT total_study_hours, streak_days, quests_completed, avg_session_minutes
FROM study_stats WHERE owner_id = ?`, ownerID).
		Scan(&snap.TotalStudyHours, &snap.StreakDays, &snap.QuestsCompleted, &snap.AvgSessionMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return pet.StudyStatsSnapshot{}, nil
	}
	if err != nil {
		return pet.StudyStatsSnapshot{}, err
	}
	return snap, nil
}
