package open_game_manager

func (m *openGameManager) readyGroupResetParticipants() {
	m.rg.ResetParticipants()
	m.state.Participants = map[string]*OpenGameParticipant{}
}

func (m *openGameManager) readyGroupAddParticipant(participant OpenGameParticipant, isReady bool) {
	m.state.Participants[participant.ID] = &OpenGameParticipant{
		ID:      participant.ID,
		Index:   participant.Index,
		IsReady: isReady,
	}
	m.rg.Add(int64(participant.Index), isReady)
}

func (m *openGameManager) readyGroupOnCompleted() {
	m.mu.Lock()
	if !m.isOpen {
		m.mu.Unlock()
		return
	}
	m.isOpen = false
	for participantID := range m.state.Participants {
		m.state.Participants[participantID].IsReady = true
	}
	m.mu.Unlock()

	m.onOpenGameReady(m.GetState())
}
