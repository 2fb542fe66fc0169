package deck

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

var (
	ErrDeckExhausted = errors.New("deck: exhausted")
	ErrInvalidSeed   = errors.New("deck: invalid seed")
)

const SeedSize = 32

// Deck is an ordered 52 card sequence consumed front to back.
type Deck struct {
	cards []Card
	next  int
}

// NewSeed returns a fresh seed from the system CSPRNG.
func NewSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// New shuffles the 52 cards with Fisher-Yates driven by a SHA-256 counter
// stream of the seed. The same seed always yields the same order.
func New(seed []byte) (*Deck, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	d := &Deck{
		cards: make([]Card, CardCount),
	}
	for i := 0; i < CardCount; i++ {
		d.cards[i] = Card(i)
	}

	s := newStream(seed)
	for i := CardCount - 1; i > 0; i-- {
		j := int(s.uniform(uint64(i + 1)))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	return d, nil
}

// NewFromCards builds a deck that deals the given cards in order.
func NewFromCards(cards []Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
	}
	copy(d.cards, cards)
	return d
}

// NewStacked deals top first, then the rest of the 52 cards in index order.
func NewStacked(top []Card) *Deck {
	used := make(map[Card]bool, len(top))
	cards := make([]Card, 0, CardCount)
	for _, c := range top {
		used[c] = true
		cards = append(cards, c)
	}

	for i := 0; i < CardCount; i++ {
		if !used[Card(i)] {
			cards = append(cards, Card(i))
		}
	}

	return NewFromCards(cards)
}

// Draw removes and returns the next n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || d.Remaining() < n {
		return nil, ErrDeckExhausted
	}

	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Cards returns the full order, dealt cards included.
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

type stream struct {
	seed    []byte
	counter uint64
	buf     []byte
}

func newStream(seed []byte) *stream {
	s := &stream{
		seed: make([]byte, len(seed)),
	}
	copy(s.seed, seed)
	return s
}

func (s *stream) uint64() uint64 {
	if len(s.buf) < 8 {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], s.counter)
		s.counter++

		h := sha256.New()
		h.Write(s.seed)
		h.Write(ctr[:])
		s.buf = append(s.buf, h.Sum(nil)...)
	}

	v := binary.BigEndian.Uint64(s.buf[:8])
	s.buf = s.buf[8:]
	return v
}

// uniform returns a value in [0, n) without modulo bias.
func (s *stream) uniform(n uint64) uint64 {
	// 2^64 mod n values at the top of the range are rejected
	rem := (^uint64(0)%n + 1) % n
	for {
		v := s.uint64()
		if rem == 0 || v < -rem {
			return v % n
		}
	}
}
