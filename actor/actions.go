package actor

import (
	"github.com/pokerd/pokerd"
)

type Actions interface {
	Ready() error
	Leave() error
	Fold(sequence int64) error
	Check(sequence int64) error
	Call(sequence int64) error
	Bet(sequence int64, chips int64) error
	Raise(sequence int64, to int64) error
	AllIn(sequence int64) error
}

type actions struct {
	actor    Actor
	playerID string
}

func NewActions(a Actor, playerID string) Actions {
	return &actions{
		actor:    a,
		playerID: playerID,
	}
}

func (a *actions) Ready() error {
	return a.actor.GetTable().Ready(a.playerID)
}

func (a *actions) Leave() error {
	return a.actor.GetTable().Leave(a.playerID)
}

func (a *actions) Fold(sequence int64) error {
	return a.submit(pokerd.ActionType_Fold, 0, sequence)
}

func (a *actions) Check(sequence int64) error {
	return a.submit(pokerd.ActionType_Check, 0, sequence)
}

func (a *actions) Call(sequence int64) error {
	return a.submit(pokerd.ActionType_Call, 0, sequence)
}

func (a *actions) Bet(sequence int64, chips int64) error {
	return a.submit(pokerd.ActionType_Bet, chips, sequence)
}

func (a *actions) Raise(sequence int64, to int64) error {
	return a.submit(pokerd.ActionType_Raise, to, sequence)
}

func (a *actions) AllIn(sequence int64) error {
	return a.submit(pokerd.ActionType_AllIn, 0, sequence)
}

func (a *actions) submit(actionType string, amount int64, sequence int64) error {
	return a.actor.GetTable().SubmitAction(pokerd.PlayerAction{
		PlayerID: a.playerID,
		Type:     actionType,
		Amount:   amount,
		Sequence: sequence,
	})
}
