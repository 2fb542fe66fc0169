package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCard = errors.New("deck: invalid card")
)

const (
	CardCount = 52
	RankCount = 13
	SuitCount = 4

	MinRank = 2
	MaxRank = 14 // ace
)

var (
	rankSymbols = "23456789TJQKA"
	suitSymbols = "cdhs"
)

// Card is one of the 52 cards, encoded as suit*13 + (rank-2).
type Card uint8

func NewCard(rank int, suit int) (Card, error) {
	if rank < MinRank || rank > MaxRank || suit < 0 || suit >= SuitCount {
		return 0, ErrInvalidCard
	}
	return Card(suit*RankCount + (rank - MinRank)), nil
}

func (c Card) Rank() int {
	return int(c)%RankCount + MinRank
}

// Suit returns 0..3 for clubs, diamonds, hearts, spades.
func (c Card) Suit() int {
	return int(c) / RankCount
}

func (c Card) Valid() bool {
	return int(c) < CardCount
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankSymbols[c.Rank()-MinRank], suitSymbols[c.Suit()]})
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidCard
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard reads the two character form, e.g. "As", "Td", "2c".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankIdx := strings.IndexByte(rankSymbols, strings.ToUpper(s[:1])[0])
	suitIdx := strings.IndexByte(suitSymbols, strings.ToLower(s[1:])[0])
	if rankIdx < 0 || suitIdx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return NewCard(rankIdx+MinRank, suitIdx)
}

// ParseCards reads a space separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func CardsString(cards []Card) string {
	symbols := make([]string, 0, len(cards))
	for _, c := range cards {
		symbols = append(symbols, c.String())
	}
	return strings.Join(symbols, " ")
}
