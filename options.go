package pokerd

import (
	"context"
	"time"

	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/evaluator"
	"github.com/rs/zerolog"
)

// Settler hands chip outcomes to the external value-transfer system.
type Settler interface {
	SettleHand(ctx context.Context, outcome *HandOutcome) error
	SettleExit(ctx context.Context, payout *ExitPayout) error
}

type TableEngineCallbacks struct {
	OnTableUpdated      func(t *Table)
	OnTableStateUpdated func(event string, update *TableStateUpdate)
	OnHandOutcome       func(outcome *HandOutcome)
	OnEngineError       func(e *EngineError)
	OnExitPayout        func(payout *ExitPayout)
}

func NewTableEngineCallbacks() *TableEngineCallbacks {
	return &TableEngineCallbacks{
		OnTableUpdated:      func(*Table) {},
		OnTableStateUpdated: func(string, *TableStateUpdate) {},
		OnHandOutcome:       func(*HandOutcome) {},
		OnEngineError:       func(*EngineError) {},
		OnExitPayout:        func(*ExitPayout) {},
	}
}

type TableEngineOptions struct {
	Logger          zerolog.Logger
	ActionTimeout   time.Duration // 0: players wait forever
	NextHandTimeout int           // seconds before unready players are auto ready
	AutoStartHands  bool
	SeedSource      func() ([]byte, error)
	DeckSource      func(seed []byte) (*deck.Deck, error)
	Evaluator       evaluator.HandEvaluator
	Settler         Settler
	SettleTimeout   time.Duration
}

func NewTableEngineOptions() *TableEngineOptions {
	return &TableEngineOptions{
		Logger:          zerolog.Nop(),
		ActionTimeout:   30 * time.Second,
		NextHandTimeout: 5,
		AutoStartHands:  false,
		SeedSource:      deck.NewSeed,
		DeckSource:      deck.New,
		Evaluator:       evaluator.NewPokerEvaluator(),
		Settler:         nil,
		SettleTimeout:   5 * time.Second,
	}
}

// withDefaults fills the zero fields of options.
func (o TableEngineOptions) withDefaults() *TableEngineOptions {
	defaults := NewTableEngineOptions()
	if o.SeedSource == nil {
		o.SeedSource = defaults.SeedSource
	}
	if o.DeckSource == nil {
		o.DeckSource = defaults.DeckSource
	}
	if o.Evaluator == nil {
		o.Evaluator = defaults.Evaluator
	}
	if o.SettleTimeout <= 0 {
		o.SettleTimeout = defaults.SettleTimeout
	}
	if o.NextHandTimeout <= 0 {
		o.NextHandTimeout = defaults.NextHandTimeout
	}
	return &o
}
