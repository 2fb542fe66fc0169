package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ContainsEveryCardOnce(t *testing.T) {
	seed, err := NewSeed()
	require.NoError(t, err)

	d, err := New(seed)
	require.NoError(t, err)

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.True(t, c.Valid())
		assert.False(t, seen[c], "duplicated card %s", c)
		seen[c] = true
	}
	assert.Equal(t, CardCount, len(seen))
	assert.Equal(t, CardCount, d.Remaining())
}

func TestNew_Deterministic(t *testing.T) {
	seed := []byte("replayable seed for table 1 hand 7")

	d1, err := New(seed)
	require.NoError(t, err)
	d2, err := New(seed)
	require.NoError(t, err)
	assert.Equal(t, d1.Cards(), d2.Cards())

	d3, err := New([]byte("another seed"))
	require.NoError(t, err)
	assert.NotEqual(t, d1.Cards(), d3.Cards())
}

func TestNew_EmptySeed(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestDraw(t *testing.T) {
	d, err := New([]byte{1, 2, 3})
	require.NoError(t, err)
	order := d.Cards()

	hole, err := d.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, order[:2], hole)

	flop, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, order[2:5], flop)
	assert.Equal(t, CardCount-5, d.Remaining())
}

func TestDraw_Exhausted(t *testing.T) {
	d := NewFromCards(MustParseCards("As Kd"))

	_, err := d.Draw(3)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, d.Remaining(), "failed draw must not consume cards")

	cards, err := d.Draw(2)
	assert.NoError(t, err)
	assert.Equal(t, "As Kd", CardsString(cards))

	_, err = d.Draw(1)
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestShuffle_FirstCardSpread(t *testing.T) {
	// every card should show up on top across a few thousand seeds
	counts := make(map[Card]int)
	for i := 0; i < 5200; i++ {
		d, err := New([]byte{byte(i), byte(i >> 8), 0x5a})
		require.NoError(t, err)
		counts[d.Cards()[0]]++
	}

	assert.Equal(t, CardCount, len(counts))
	for c, n := range counts {
		assert.Greater(t, n, 40, "card %s under-represented", c)
		assert.Less(t, n, 180, "card %s over-represented", c)
	}
}

func TestUniform_Range(t *testing.T) {
	s := newStream([]byte("range"))
	for n := uint64(1); n <= 52; n++ {
		for i := 0; i < 50; i++ {
			assert.Less(t, s.uniform(n), n)
		}
	}
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("As")
	require.NoError(t, err)
	assert.Equal(t, 14, c.Rank())
	assert.Equal(t, 3, c.Suit())
	assert.Equal(t, "As", c.String())

	c, err = ParseCard("td")
	require.NoError(t, err)
	assert.Equal(t, 10, c.Rank())
	assert.Equal(t, "Td", c.String())

	_, err = ParseCard("1x")
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = ParseCard("Ahh")
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestCard_Text(t *testing.T) {
	c := MustParseCards("9h")[0]
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "9h", string(text))

	var back Card
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, c, back)
}

func TestNewStacked(t *testing.T) {
	top := MustParseCards("As Kd 2c")
	d := NewStacked(top)
	assert.Equal(t, CardCount, d.Remaining())

	cards, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, top, cards)

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicated card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, CardCount)
}
