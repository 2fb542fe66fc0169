package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/pokerd/pokerd"
)

var (
	ErrUnknownDriver = errors.New("settlement: unknown driver")
	ErrEmptyDSN      = errors.New("settlement: empty dsn")
)

const (
	Driver_None     = "none"
	Driver_SQLite   = "sqlite"
	Driver_Postgres = "postgres"
)

/*
Outbox 記錄每手結算與離桌結算，交給外部金流系統處理
  - 同一手重複寫入會被忽略
*/
type Outbox interface {
	pokerd.Settler
	Close() error
}

// Open creates the outbox for the configured driver.
func Open(ctx context.Context, driver string, dsn string) (Outbox, error) {
	switch driver {
	case "", Driver_None:
		return NewNoopOutbox(), nil
	case Driver_SQLite:
		o, err := NewSQLiteOutbox(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return o, nil
	case Driver_Postgres:
		o, err := NewPostgresOutbox(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

type noopOutbox struct{}

func NewNoopOutbox() Outbox {
	return &noopOutbox{}
}

func (o *noopOutbox) SettleHand(ctx context.Context, outcome *pokerd.HandOutcome) error {
	return nil
}

func (o *noopOutbox) SettleExit(ctx context.Context, payout *pokerd.ExitPayout) error {
	return nil
}

func (o *noopOutbox) Close() error {
	return nil
}
