package evaluator

import (
	"github.com/paulhankin/poker"
	"github.com/pokerd/pokerd/deck"
	"github.com/weedbox/pokerface/combination"
)

type pokerEvaluator struct{}

// NewPokerEvaluator ranks hands with github.com/paulhankin/poker.
func NewPokerEvaluator() HandEvaluator {
	return &pokerEvaluator{}
}

func (e *pokerEvaluator) Evaluate(cards []deck.Card) (HandValue, error) {
	if err := checkCards(cards); err != nil {
		return 0, err
	}

	pcs, err := toPokerCards(cards)
	if err != nil {
		return 0, err
	}

	switch len(pcs) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return HandValue(poker.Eval7(&a7)), nil
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return HandValue(poker.Eval5(&a5)), nil
	default:
		return HandValue(bestOfFiveSubsets(cards, pcs)), nil
	}
}

func (e *pokerEvaluator) Describe(cards []deck.Card) (string, error) {
	if err := checkCards(cards); err != nil {
		return "", err
	}

	pcs, err := toPokerCards(cards)
	if err != nil {
		return "", err
	}

	return poker.Describe(pcs)
}

func toPokerCards(cards []deck.Card) ([]poker.Card, error) {
	pcs := make([]poker.Card, 0, len(cards))
	for _, c := range cards {
		pc, err := toPokerCard(c)
		if err != nil {
			return nil, err
		}
		pcs = append(pcs, pc)
	}
	return pcs, nil
}

func toPokerCard(c deck.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit() {
	case 0:
		s = poker.Club
	case 1:
		s = poker.Diamond
	case 2:
		s = poker.Heart
	default:
		s = poker.Spade
	}

	// library ranks are 1..13 with ace as 1
	r := poker.Rank(c.Rank())
	if c.Rank() == deck.MaxRank {
		r = poker.Rank(1)
	}

	return poker.MakeCard(s, r)
}

// bestOfFiveSubsets scores every 5 card subset and keeps the strongest.
func bestOfFiveSubsets(cards []deck.Card, pcs []poker.Card) int16 {
	symbols := make([]string, len(cards))
	lookup := make(map[string]poker.Card, len(cards))
	for i, c := range cards {
		symbols[i] = c.String()
		lookup[symbols[i]] = pcs[i]
	}

	best := int16(-32768)
	var five [5]poker.Card
	for _, subset := range combination.GetPossibleCombinations(symbols, 5) {
		for i, symbol := range subset {
			five[i] = lookup[symbol]
		}
		if score := poker.Eval5(&five); score > best {
			best = score
		}
	}

	return best
}
