package open_game_manager

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("open_game_manager: participant not found")
	ErrGateClosed          = errors.New("open_game_manager: gate is closed")
)

// OpenGameManager gates the start of the next hand until every seated player is ready or the timeout expires.
type OpenGameManager interface {
	Ready(participantID string) error
	Setup(handCount int, participants map[string]int)
	Stop()
	GetState() OpenGameState
	IsOpen() bool
}

type openGameManager struct {
	mu              sync.Mutex
	onOpenGameReady func(state OpenGameState)
	rg              *syncsaga.ReadyGroup
	state           *OpenGameState
	isOpen          bool
}

type OpenGameOption struct {
	Timeout         int // seconds
	OnOpenGameReady func(state OpenGameState)
}

type OpenGameState struct {
	Timeout      int                             `json:"timeout"`
	HandCount    int                             `json:"hand_count"`
	Participants map[string]*OpenGameParticipant `json:"participants"` // key: player_id, value: participant
}

type OpenGameParticipant struct {
	ID      string `json:"id"`
	Index   int    `json:"index"` // seat
	IsReady bool   `json:"is_ready"`
}
