package actor

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pokerd/pokerd"
	"github.com/thoas/go-funk"
	"github.com/weedbox/timebank"
)

const reactionDelay = 10 * time.Millisecond

type ActionSubmittedFunc func(tableID string, handCount int, phase pokerd.Phase, action string, chips int64)

type ActionProbability struct {
	Action string
	Weight float64
}

var (
	actionProbabilities = []ActionProbability{
		{Action: pokerd.ActionType_Check, Weight: 0.1},
		{Action: pokerd.ActionType_Call, Weight: 0.3},
		{Action: pokerd.ActionType_Fold, Weight: 0.15},
		{Action: pokerd.ActionType_AllIn, Weight: 0.05},
		{Action: pokerd.ActionType_Raise, Weight: 0.3},
		{Action: pokerd.ActionType_Bet, Weight: 0.1},
	}
)

/*
botRunner 隨機選擇合法動作的機器人
  - 每次收到桌次更新時檢查是否輪到自己
  - 動作透過 timebank 延後送出，避免在桌次 lock 內呼叫 TableEngine
*/
type botRunner struct {
	mu                sync.Mutex
	actor             Actor
	actions           Actions
	playerID          string
	maxThinkingTime   time.Duration
	rng               *rand.Rand
	lastSerial        int64
	readyHandCount    int
	timebank          *timebank.TimeBank
	onActionSubmitted ActionSubmittedFunc
	onActionFailed    func(err error)
}

func NewBotRunner(playerID string) *botRunner {
	return &botRunner{
		playerID:          playerID,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
		readyHandCount:    pokerd.UnsetValue,
		onActionSubmitted: func(string, int, pokerd.Phase, string, int64) {},
		onActionFailed:    func(error) {},
	}
}

func (br *botRunner) SetActor(a Actor) {
	br.actor = a
	br.actions = NewActions(a, br.playerID)
}

// Humanized delays every action by a random thinking time up to max.
func (br *botRunner) Humanized(max time.Duration) {
	br.maxThinkingTime = max
}

func (br *botRunner) Seed(seed int64) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.rng = rand.New(rand.NewSource(seed))
}

func (br *botRunner) OnActionSubmitted(fn ActionSubmittedFunc) {
	br.onActionSubmitted = fn
}

func (br *botRunner) OnActionFailed(fn func(err error)) {
	br.onActionFailed = fn
}

func (br *botRunner) UpdateTableState(table *pokerd.Table) error {
	br.mu.Lock()
	defer br.mu.Unlock()

	// The state remains unchanged or is outdated
	if table.UpdateSerial <= br.lastSerial {
		return nil
	}
	br.lastSerial = table.UpdateSerial

	seatID := table.FindSeat(br.playerID)
	if seatID == pokerd.UnsetValue {
		return nil
	}
	seat := table.State.Seats[seatID]

	// Ready for the next hand
	if table.State.Phase == pokerd.Phase_HandComplete {
		if seat.Status != pokerd.SeatStatus_Active || seat.Stack <= 0 || seat.IsLeaving {
			return nil
		}
		if br.readyHandCount == table.State.HandCount {
			return nil
		}
		br.readyHandCount = table.State.HandCount

		return br.schedule(reactionDelay, func(isCancelled bool) {
			if isCancelled {
				return
			}

			if err := br.actions.Ready(); err != nil {
				br.onActionFailed(err)
			}
		})
	}

	legalActions := table.LegalActions(br.playerID)
	if len(legalActions) == 0 {
		return nil
	}

	return br.schedule(br.thinkingTime(), func(isCancelled bool) {
		if isCancelled {
			return
		}

		br.requestAI(table, seat, legalActions)
	})
}

// schedule replaces the pending task; every task gets its own timebank.
func (br *botRunner) schedule(d time.Duration, fn func(isCancelled bool)) error {
	if br.timebank != nil {
		br.timebank.Cancel()
	}
	br.timebank = timebank.NewTimeBank()
	return br.timebank.NewTask(d, fn)
}

func (br *botRunner) thinkingTime() time.Duration {
	if br.maxThinkingTime <= reactionDelay {
		return reactionDelay
	}
	return reactionDelay + time.Duration(br.rng.Int63n(int64(br.maxThinkingTime-reactionDelay)))
}

func (br *botRunner) calcActionProbabilities(actions []string) map[string]float64 {
	probabilities := make(map[string]float64)
	totalWeight := 0.0
	for _, action := range actions {
		for _, p := range actionProbabilities {
			if action == p.Action {
				probabilities[action] = p.Weight
				totalWeight += p.Weight
				break
			}
		}
	}

	// cumulative weight in the order of actions
	scaleRatio := 1.0 / totalWeight
	weightLevel := 0.0
	for _, action := range actions {
		weightLevel += probabilities[action] * scaleRatio
		probabilities[action] = weightLevel
	}

	return probabilities
}

func (br *botRunner) calcAction(actions []string) string {
	// never fold when checking is free
	if funk.ContainsString(actions, pokerd.ActionType_Check) {
		actions = funk.Filter(actions, func(action string) bool {
			return action != pokerd.ActionType_Fold
		}).([]string)
	}

	if len(actions) == 1 {
		return actions[0]
	}

	probabilities := br.calcActionProbabilities(actions)
	randomNum := br.rng.Float64()
	for _, action := range actions {
		if randomNum < probabilities[action] {
			return action
		}
	}

	return actions[len(actions)-1]
}

func (br *botRunner) requestAI(table *pokerd.Table, seat *pokerd.TableSeat, legalActions []string) {
	br.mu.Lock()
	state := table.State
	action := br.calcAction(legalActions)
	chips := int64(0)

	switch action {
	case pokerd.ActionType_Bet:
		minBet := state.MinRaise
		if seat.Stack <= minBet {
			chips = seat.Stack
		} else {
			chips = br.rng.Int63n(seat.Stack-minBet) + minBet
		}
	case pokerd.ActionType_Raise:
		maxChipLevel := seat.StreetCommitted + seat.Stack
		minChipLevel := state.CurrentBet + state.MinRaise
		if maxChipLevel <= minChipLevel {
			chips = maxChipLevel
		} else {
			chips = br.rng.Int63n(maxChipLevel-minChipLevel) + minChipLevel
		}
	case pokerd.ActionType_Call:
		chips = state.CurrentBet - seat.StreetCommitted
	case pokerd.ActionType_AllIn:
		chips = seat.Stack
	}
	br.mu.Unlock()

	sequence := state.NextSequence

	var err error
	switch action {
	case pokerd.ActionType_Bet:
		err = br.actions.Bet(sequence, chips)
	case pokerd.ActionType_Raise:
		err = br.actions.Raise(sequence, chips)
	case pokerd.ActionType_Call:
		err = br.actions.Call(sequence)
	case pokerd.ActionType_Check:
		err = br.actions.Check(sequence)
	case pokerd.ActionType_AllIn:
		err = br.actions.AllIn(sequence)
	default:
		err = br.actions.Fold(sequence)
	}

	if err != nil {
		br.onActionFailed(err)
		return
	}

	br.onActionSubmitted(table.ID, state.HandCount, state.Phase, action, chips)
}
