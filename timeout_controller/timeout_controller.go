package timeout_controller

import (
	"sync"
	"time"

	"github.com/weedbox/timebank"
)

// Token identifies the decision a timer was armed for.
type Token struct {
	HandCount int   `json:"hand_count"`
	Sequence  int64 `json:"sequence"`
	Seat      int   `json:"seat"`
}

type TimeoutController interface {
	Arm(token Token, d time.Duration) error
	Disarm()
	Armed() (Token, bool)
}

type timeoutController struct {
	mu         sync.Mutex
	tb         *timebank.TimeBank
	onExpired  func(Token)
	generation int64
	token      Token
	isArmed    bool
}

// NewTimeoutController creates a single-slot action timer. onExpired runs on its own goroutine.
func NewTimeoutController(onExpired func(Token)) TimeoutController {
	if onExpired == nil {
		onExpired = func(Token) {}
	}

	return &timeoutController{
		onExpired: onExpired,
	}
}

/*
Arm 設定行動倒數
  - 重複呼叫會取消前一個倒數
  - d <= 0 時不設定倒數
*/
func (tc *timeoutController) Arm(token Token, d time.Duration) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cancel()
	if d <= 0 {
		return nil
	}

	generation := tc.generation
	tc.token = token
	tc.isArmed = true

	// each task owns its timebank, a finished task never shares a timer with the next one
	tc.tb = timebank.NewTimeBank()
	return tc.tb.NewTask(d, func(isCancelled bool) {
		if isCancelled {
			return
		}

		tc.mu.Lock()
		if !tc.isArmed || tc.generation != generation {
			tc.mu.Unlock()
			return
		}
		tc.isArmed = false
		expired := tc.token
		tc.mu.Unlock()

		go tc.onExpired(expired)
	})
}

func (tc *timeoutController) Disarm() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cancel()
}

func (tc *timeoutController) Armed() (Token, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	return tc.token, tc.isArmed
}

func (tc *timeoutController) cancel() {
	tc.generation++
	tc.isArmed = false
	if tc.tb != nil {
		tc.tb.Cancel()
		tc.tb = nil
	}
}
