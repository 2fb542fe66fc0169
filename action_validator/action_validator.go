package action_validator

import (
	"errors"
)

var (
	ErrOutOfTurn                = errors.New("action validator: out of turn")
	ErrIllegalActionType        = errors.New("action validator: illegal action type")
	ErrBelowMinRaise            = errors.New("action validator: below minimum raise")
	ErrHandAlreadyComplete      = errors.New("action validator: hand already complete")
	ErrConflictingSequenceToken = errors.New("action validator: conflicting sequence token")
	ErrTableFrozen              = errors.New("action validator: table is frozen")
)

const (
	ActionType_Fold  = "fold"
	ActionType_Check = "check"
	ActionType_Call  = "call"
	ActionType_Bet   = "bet"
	ActionType_Raise = "raise"
	ActionType_AllIn = "allin"
)

// Context is the part of the table state an action is judged against.
type Context struct {
	IsFrozen      bool
	IsBettingOpen bool
	NextSequence  int64
	CurrentActor  int
	CurrentBet    int64
	MinRaise      int64
}

// Seat describes the acting seat.
type Seat struct {
	Seat      int
	Stack     int64
	Committed int64
	CanRaise  bool
}

type Request struct {
	Type     string
	Amount   int64
	Sequence int64
}

// Action is a normalized action ready to be applied.
type Action struct {
	Type        string `json:"type"`
	Chips       int64  `json:"chips"`         // chips moved from the stack
	To          int64  `json:"to"`            // street commitment after the action
	IsFullRaise bool   `json:"is_full_raise"` // reopens action for seats that already acted
}

/*
Validate 檢查玩家動作是否合法
  - 不合法時回傳錯誤，不修改任何狀態
  - 合法時回傳正規化後的動作 (超過籌碼的下注會轉為 all-in)
*/
func Validate(c Context, seat Seat, r Request) (Action, error) {
	if c.IsFrozen {
		return Action{}, ErrTableFrozen
	}

	if !c.IsBettingOpen {
		return Action{}, ErrHandAlreadyComplete
	}

	if r.Sequence != c.NextSequence {
		return Action{}, ErrConflictingSequenceToken
	}

	if seat.Seat != c.CurrentActor {
		return Action{}, ErrOutOfTurn
	}

	toCall := c.CurrentBet - seat.Committed
	if toCall < 0 {
		toCall = 0
	}

	switch r.Type {
	case ActionType_Fold:
		return Action{
			Type: ActionType_Fold,
			To:   seat.Committed,
		}, nil
	case ActionType_Check:
		if toCall > 0 {
			return Action{}, ErrIllegalActionType
		}
		return Action{
			Type: ActionType_Check,
			To:   seat.Committed,
		}, nil
	case ActionType_Call:
		if toCall == 0 {
			return Action{}, ErrIllegalActionType
		}
		if seat.Stack <= toCall {
			return allIn(c, seat), nil
		}
		return Action{
			Type:  ActionType_Call,
			Chips: toCall,
			To:    c.CurrentBet,
		}, nil
	case ActionType_Bet:
		return validateBet(c, seat, r.Amount)
	case ActionType_Raise:
		return validateRaise(c, seat, r.Amount)
	case ActionType_AllIn:
		if seat.Stack <= 0 {
			return Action{}, ErrIllegalActionType
		}
		if !seat.CanRaise && seat.Stack > toCall {
			return Action{}, ErrIllegalActionType
		}
		return allIn(c, seat), nil
	}

	return Action{}, ErrIllegalActionType
}

// DefaultAction is the action applied when the actor runs out of time.
func DefaultAction(c Context, seat Seat) string {
	if c.CurrentBet-seat.Committed > 0 {
		return ActionType_Fold
	}
	return ActionType_Check
}

// LegalActions lists the action types the seat may submit now. It is empty when the seat is not the actor.
func LegalActions(c Context, seat Seat) []string {
	if c.IsFrozen || !c.IsBettingOpen || seat.Seat != c.CurrentActor {
		return []string{}
	}

	toCall := c.CurrentBet - seat.Committed
	actions := []string{ActionType_Fold}

	if toCall <= 0 {
		actions = append(actions, ActionType_Check)
	} else if seat.Stack > 0 {
		actions = append(actions, ActionType_Call)
	}

	if seat.Stack <= 0 {
		return actions
	}

	if c.CurrentBet == 0 {
		actions = append(actions, ActionType_Bet)
	} else if seat.CanRaise && seat.Stack > toCall {
		actions = append(actions, ActionType_Raise)
	}

	if seat.CanRaise || seat.Stack <= toCall {
		actions = append(actions, ActionType_AllIn)
	}

	return actions
}

func validateBet(c Context, seat Seat, amount int64) (Action, error) {
	if c.CurrentBet > 0 || amount <= 0 {
		return Action{}, ErrIllegalActionType
	}

	if amount >= seat.Stack {
		return allIn(c, seat), nil
	}

	if amount < c.MinRaise {
		if seat.Stack <= c.MinRaise {
			return allIn(c, seat), nil
		}
		return Action{}, ErrBelowMinRaise
	}

	return Action{
		Type:        ActionType_Bet,
		Chips:       amount,
		To:          seat.Committed + amount,
		IsFullRaise: true,
	}, nil
}

func validateRaise(c Context, seat Seat, to int64) (Action, error) {
	if c.CurrentBet <= 0 || !seat.CanRaise {
		return Action{}, ErrIllegalActionType
	}

	if to-seat.Committed >= seat.Stack {
		return allIn(c, seat), nil
	}

	minTo := c.CurrentBet + c.MinRaise
	if to < minTo {
		if seat.Committed+seat.Stack <= minTo {
			return allIn(c, seat), nil
		}
		return Action{}, ErrBelowMinRaise
	}

	return Action{
		Type:        ActionType_Raise,
		Chips:       to - seat.Committed,
		To:          to,
		IsFullRaise: true,
	}, nil
}

func allIn(c Context, seat Seat) Action {
	to := seat.Committed + seat.Stack
	return Action{
		Type:        ActionType_AllIn,
		Chips:       seat.Stack,
		To:          to,
		IsFullRaise: to >= c.CurrentBet+c.MinRaise,
	}
}
