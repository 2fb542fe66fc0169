package settlement

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pokerd/pokerd"

	_ "modernc.org/sqlite"
)

type SQLiteOutbox struct {
	db *sql.DB
}

func NewSQLiteOutbox(ctx context.Context, dbPath string) (*SQLiteOutbox, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, ErrEmptyDSN
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteOutbox{db: db}, nil
}

func (o *SQLiteOutbox) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}

func (o *SQLiteOutbox) SettleHand(ctx context.Context, outcome *pokerd.HandOutcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}

	_, err = o.db.ExecContext(ctx, `
INSERT INTO hand_outcomes (table_id, hand_count, payload_json, created_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT (table_id, hand_count) DO NOTHING
`, outcome.TableID, outcome.HandCount, string(payload), time.Now().UTC().UnixMilli())
	return err
}

func (o *SQLiteOutbox) SettleExit(ctx context.Context, payout *pokerd.ExitPayout) error {
	_, err := o.db.ExecContext(ctx, `
INSERT INTO exit_payouts (table_id, player_id, seat, chips, created_at_ms)
VALUES (?, ?, ?, ?, ?)
`, payout.TableID, payout.PlayerID, payout.Seat, payout.Chips, time.Now().UTC().UnixMilli())
	return err
}

// HandOutcomes lists the recorded outcomes of a table in hand order.
func (o *SQLiteOutbox) HandOutcomes(ctx context.Context, tableID string) ([]*pokerd.HandOutcome, error) {
	rows, err := o.db.QueryContext(ctx, `
SELECT payload_json FROM hand_outcomes
 WHERE table_id = ?
 ORDER BY hand_count ASC
`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make([]*pokerd.HandOutcome, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}

		var outcome pokerd.HandOutcome
		if err := json.Unmarshal([]byte(payload), &outcome); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, &outcome)
	}
	return outcomes, rows.Err()
}

// ExitPayouts sums the exit payouts of a player across tables.
func (o *SQLiteOutbox) ExitPayouts(ctx context.Context, playerID string) (int64, error) {
	var total int64
	err := o.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(chips), 0) FROM exit_payouts WHERE player_id = ?
`, playerID).Scan(&total)
	return total, err
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS hand_outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    table_id TEXT NOT NULL,
    hand_count INTEGER NOT NULL,
    payload_json TEXT NOT NULL DEFAULT '{}',
    created_at_ms INTEGER NOT NULL,
    UNIQUE (table_id, hand_count)
)`,
		`
CREATE TABLE IF NOT EXISTS exit_payouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    table_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    seat INTEGER NOT NULL,
    chips INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_exit_payouts_player ON exit_payouts(player_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
