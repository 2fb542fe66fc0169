package timeout_controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutController_Expired(t *testing.T) {
	expired := make(chan Token, 1)
	tc := NewTimeoutController(func(token Token) {
		expired <- token
	})

	token := Token{HandCount: 2, Sequence: 9, Seat: 3}
	assert.NoError(t, tc.Arm(token, 50*time.Millisecond))

	armed, ok := tc.Armed()
	assert.True(t, ok)
	assert.Equal(t, token, armed)

	select {
	case got := <-expired:
		assert.Equal(t, token, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expire")
	}

	_, ok = tc.Armed()
	assert.False(t, ok)
}

func TestTimeoutController_Disarm(t *testing.T) {
	expired := make(chan Token, 1)
	tc := NewTimeoutController(func(token Token) {
		expired <- token
	})

	assert.NoError(t, tc.Arm(Token{HandCount: 1, Sequence: 1, Seat: 0}, 50*time.Millisecond))
	tc.Disarm()

	select {
	case <-expired:
		t.Fatal("disarmed timer fired")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestTimeoutController_Rearm(t *testing.T) {
	expired := make(chan Token, 2)
	tc := NewTimeoutController(func(token Token) {
		expired <- token
	})

	assert.NoError(t, tc.Arm(Token{HandCount: 1, Sequence: 1, Seat: 0}, 50*time.Millisecond))
	assert.NoError(t, tc.Arm(Token{HandCount: 1, Sequence: 2, Seat: 1}, 100*time.Millisecond))

	select {
	case got := <-expired:
		assert.Equal(t, int64(2), got.Sequence)
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expire")
	}

	select {
	case <-expired:
		t.Fatal("replaced timer fired")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestTimeoutController_ZeroDuration(t *testing.T) {
	tc := NewTimeoutController(nil)

	assert.NoError(t, tc.Arm(Token{HandCount: 1, Sequence: 1, Seat: 0}, 0))
	_, ok := tc.Armed()
	assert.False(t, ok)
}

func TestTimeoutController_RapidRearm(t *testing.T) {
	expired := make(chan Token, 64)
	tc := NewTimeoutController(func(token Token) {
		expired <- token
	})

	for i := int64(1); i <= 50; i++ {
		assert.NoError(t, tc.Arm(Token{HandCount: 1, Sequence: i, Seat: int(i % 3)}, 80*time.Millisecond))
		if i%10 == 0 {
			tc.Disarm()
		}
	}
	assert.NoError(t, tc.Arm(Token{HandCount: 2, Sequence: 51, Seat: 0}, 30*time.Millisecond))

	select {
	case got := <-expired:
		assert.Equal(t, Token{HandCount: 2, Sequence: 51, Seat: 0}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expire")
	}

	select {
	case got := <-expired:
		t.Fatalf("stale timer fired: %+v", got)
	case <-time.After(300 * time.Millisecond):
	}
}
