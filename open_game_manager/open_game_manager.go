package open_game_manager

import (
	"github.com/weedbox/syncsaga"
)

func NewOpenGameManager(options OpenGameOption) OpenGameManager {
	onOpenGameReady := options.OnOpenGameReady
	if onOpenGameReady == nil {
		onOpenGameReady = func(OpenGameState) {}
	}

	m := &openGameManager{
		onOpenGameReady: onOpenGameReady,
		rg: syncsaga.NewReadyGroup(syncsaga.WithTimeout(options.Timeout, func(rg *syncsaga.ReadyGroup) {
			// Auto Ready By Default
			for idx, isReady := range rg.GetParticipantStates() {
				if !isReady {
					rg.Ready(idx)
				}
			}
		})),
	}
	m.state = &OpenGameState{
		Timeout:      options.Timeout,
		HandCount:    0,
		Participants: make(map[string]*OpenGameParticipant),
	}

	return m
}

func (m *openGameManager) Ready(participantID string) error {
	m.mu.Lock()
	if !m.isOpen {
		m.mu.Unlock()
		return ErrGateClosed
	}

	participant, exist := m.state.Participants[participantID]
	if !exist {
		m.mu.Unlock()
		return ErrParticipantNotFound
	}
	participant.IsReady = true
	idx := int64(participant.Index)
	m.mu.Unlock()

	// the ready group may complete synchronously
	m.rg.Ready(idx)
	return nil
}

/*
Setup 開啟下一手的準備閘門
  - participants, key: player_id, value: seat
  - 所有玩家準備完成或逾時後觸發 OnOpenGameReady
*/
func (m *openGameManager) Setup(handCount int, participants map[string]int) {
	m.rg.Stop()

	m.mu.Lock()
	m.state.HandCount = handCount
	m.isOpen = true
	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted()
	})
	m.readyGroupResetParticipants()
	for id, idx := range participants {
		participant := OpenGameParticipant{
			ID:      id,
			Index:   idx,
			IsReady: false,
		}
		m.readyGroupAddParticipant(participant, false)
	}
	m.mu.Unlock()

	m.rg.Start()
}

func (m *openGameManager) Stop() {
	m.mu.Lock()
	m.isOpen = false
	m.mu.Unlock()

	m.rg.Stop()
}

func (m *openGameManager) GetState() OpenGameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	participants := make(map[string]*OpenGameParticipant, len(m.state.Participants))
	for id, p := range m.state.Participants {
		cp := *p
		participants[id] = &cp
	}

	return OpenGameState{
		Timeout:      m.state.Timeout,
		HandCount:    m.state.HandCount,
		Participants: participants,
	}
}

func (m *openGameManager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.isOpen
}
