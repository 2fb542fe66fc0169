package open_game_manager

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_InitOpenGameManager(t *testing.T) {
	options := OpenGameOption{
		Timeout: 1,
	}

	m := NewOpenGameManager(options)

	assert.Equal(t, options.Timeout, m.GetState().Timeout)
	assert.Equal(t, 0, m.GetState().HandCount)
	assert.Equal(t, 0, len(m.GetState().Participants))
	assert.False(t, m.IsOpen())
	assert.ErrorIs(t, m.Ready("player 1"), ErrGateClosed)
}

func Test_OpenGameManager_AllReady(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	var readyState OpenGameState
	m := NewOpenGameManager(OpenGameOption{
		Timeout: 10,
		OnOpenGameReady: func(state OpenGameState) {
			readyState = state
			wg.Done()
		},
	})

	m.Setup(3, map[string]int{
		"player 1": 0,
		"player 2": 3,
	})
	assert.True(t, m.IsOpen())
	assert.ErrorIs(t, m.Ready("player 9"), ErrParticipantNotFound)

	assert.NoError(t, m.Ready("player 1"))
	assert.True(t, m.GetState().Participants["player 1"].IsReady)
	assert.False(t, m.GetState().Participants["player 2"].IsReady)

	assert.NoError(t, m.Ready("player 2"))
	wg.Wait()

	assert.Equal(t, 3, readyState.HandCount)
	for _, participant := range readyState.Participants {
		assert.True(t, participant.IsReady)
	}
	assert.False(t, m.IsOpen())
}

func Test_OpenGameManager_Timeout(t *testing.T) {
	done := make(chan OpenGameState, 1)
	m := NewOpenGameManager(OpenGameOption{
		Timeout: 1,
		OnOpenGameReady: func(state OpenGameState) {
			done <- state
		},
	})

	m.Setup(1, map[string]int{
		"player 1": 1,
		"player 2": 2,
	})
	assert.NoError(t, m.Ready("player 2"))

	select {
	case state := <-done:
		assert.Equal(t, 1, state.HandCount)
		assert.True(t, state.Participants["player 1"].IsReady)
	case <-time.After(5 * time.Second):
		t.Fatal("gate did not open after timeout")
	}
}

func Test_OpenGameManager_Stop(t *testing.T) {
	fired := make(chan struct{}, 1)
	m := NewOpenGameManager(OpenGameOption{
		Timeout: 1,
		OnOpenGameReady: func(state OpenGameState) {
			fired <- struct{}{}
		},
	})

	m.Setup(1, map[string]int{
		"player 1": 0,
		"player 2": 1,
	})
	m.Stop()
	assert.False(t, m.IsOpen())

	select {
	case <-fired:
		t.Fatal("stopped gate should not fire")
	case <-time.After(2 * time.Second):
	}
}
