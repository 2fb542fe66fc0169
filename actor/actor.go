package actor

import (
	"github.com/pokerd/pokerd"
)

// Runner reacts to table snapshots on behalf of one player or an observer.
type Runner interface {
	SetActor(a Actor)
	UpdateTableState(table *pokerd.Table) error
}

type Actor interface {
	SetAdapter(a Adapter)
	SetRunner(r Runner)
	GetTable() Adapter
	GetRunner() Runner
}

type actor struct {
	adapter Adapter
	runner  Runner
}

func NewActor() Actor {
	return &actor{}
}

func (a *actor) SetAdapter(adapter Adapter) {
	a.adapter = adapter
	adapter.SetActor(a)
}

func (a *actor) SetRunner(runner Runner) {
	a.runner = runner
	runner.SetActor(a)
}

func (a *actor) GetTable() Adapter {
	return a.adapter
}

func (a *actor) GetRunner() Runner {
	return a.runner
}

// Broadcast forwards a table update to every actor.
func Broadcast(actors []Actor, table *pokerd.Table) {
	for _, a := range actors {
		_ = a.GetTable().UpdateTableState(table)
	}
}
