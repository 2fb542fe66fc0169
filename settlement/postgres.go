package settlement

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pokerd/pokerd"
)

//go:embed schema.sql
var schema embed.FS

type PostgresOutbox struct{ *pgxpool.Pool }

func NewPostgresOutbox(ctx context.Context, dsn string) (*PostgresOutbox, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}

	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	o := &PostgresOutbox{p}
	if err := o.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	if err := o.Migrate(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return o, nil
}

func (o *PostgresOutbox) Close() error {
	o.Pool.Close()
	return nil
}

func (o *PostgresOutbox) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = o.Exec(ctx, string(sqlBytes))
	return err
}

func (o *PostgresOutbox) SettleHand(ctx context.Context, outcome *pokerd.HandOutcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}

	_, err = o.Exec(ctx, `
        INSERT INTO hand_outcomes(table_id, hand_count, payload)
        VALUES ($1, $2, $3)
        ON CONFLICT (table_id, hand_count) DO NOTHING
    `, outcome.TableID, outcome.HandCount, payload)
	return err
}

func (o *PostgresOutbox) SettleExit(ctx context.Context, payout *pokerd.ExitPayout) error {
	_, err := o.Exec(ctx, `
        INSERT INTO exit_payouts(table_id, player_id, seat, chips)
        VALUES ($1, $2, $3, $4)
    `, payout.TableID, payout.PlayerID, payout.Seat, payout.Chips)
	return err
}

// HandOutcome loads one recorded outcome, nil when it was never settled.
func (o *PostgresOutbox) HandOutcome(ctx context.Context, tableID string, handCount int) (*pokerd.HandOutcome, error) {
	var payload []byte
	err := o.QueryRow(ctx, `
        SELECT payload FROM hand_outcomes
         WHERE table_id = $1 AND hand_count = $2
    `, tableID, handCount).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var outcome pokerd.HandOutcome
	if err := json.Unmarshal(payload, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
