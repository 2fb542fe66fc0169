package evaluator

import (
	"errors"

	"github.com/pokerd/pokerd/deck"
)

var (
	ErrInvalidCardCount = errors.New("evaluator: hand must have 5 to 7 cards")
	ErrDuplicateCard    = errors.New("evaluator: duplicate card")
)

// HandValue orders hands; a higher value is a stronger hand and equal values tie.
type HandValue int32

type HandEvaluator interface {
	Evaluate(cards []deck.Card) (HandValue, error)
	Describe(cards []deck.Card) (string, error)
}

func checkCards(cards []deck.Card) error {
	if len(cards) < 5 || len(cards) > 7 {
		return ErrInvalidCardCount
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return deck.ErrInvalidCard
		}
		if seen[c] {
			return ErrDuplicateCard
		}
		seen[c] = true
	}

	return nil
}
