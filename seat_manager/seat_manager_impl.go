package seat_manager

import (
	"sync"
)

type seatManager struct {
	maxSeat         int
	seats           map[int]*SeatPlayer // key: seat_id (from 0 to MaxSeat - 1), value: seat (nil by default)
	dealerSeatID    int                 // UnsetSeatID by default
	sbSeatID        int                 // UnsetSeatID by default
	bbSeatID        int                 // UnsetSeatID by default
	positions       map[int][]string    // key: seat_id, value: positions of the current hand
	isInitPositions bool
	mu              sync.RWMutex
}

func (sm *seatManager) GetSeatID(playerID string) (int, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	_, seatID, err := sm.getSeatPlayer(playerID)
	return seatID, err
}

/*
AssignSeat 玩家入座
  - seatID 為 UnsetSeatID 時隨機挑選空位
  - @return 實際入座的座位編號
*/
func (sm *seatManager) AssignSeat(playerID string, seatID int) (int, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, _, err := sm.getSeatPlayer(playerID); err == nil {
		return UnsetSeatID, ErrPlayerIsAlreadyExist
	}

	if seatID == UnsetSeatID {
		seatIDs, err := sm.randomSeatIDs(1)
		if err != nil {
			return UnsetSeatID, err
		}
		seatID = seatIDs[0]
	}

	seatPlayer, exist := sm.seats[seatID]
	if !exist {
		return UnsetSeatID, ErrUnavailableSeat
	}
	if seatPlayer != nil {
		return UnsetSeatID, ErrSeatAlreadyIsTaken
	}

	sp := sm.newSeatPlayer(playerID)
	sm.seats[seatID] = &sp
	return seatID, nil
}

func (sm *seatManager) RemoveSeat(playerID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, seatID, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return err
	}

	sm.seats[seatID] = nil
	return nil
}

func (sm *seatManager) UpdatePlayerHasChips(playerID string, hasChips bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	seatPlayer, _, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return err
	}

	seatPlayer.HasChips = hasChips
	return nil
}

func (sm *seatManager) UpdatePlayerIsIn(playerID string, isIn bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	seatPlayer, _, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return err
	}

	seatPlayer.IsIn = isIn
	return nil
}

func (sm *seatManager) RotatePositions() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.rotatePositions()
}

func (sm *seatManager) MaxSeat() int {
	return sm.maxSeat
}

func (sm *seatManager) Seats() map[int]*SeatPlayer {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	seats := make(map[int]*SeatPlayer, len(sm.seats))
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer == nil {
			seats[seatID] = nil
			continue
		}
		sp := *seatPlayer
		seats[seatID] = &sp
	}
	return seats
}

func (sm *seatManager) OccupiedSeatCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.getPlayerCountBy(func(sp *SeatPlayer) bool {
		return true
	})
}

func (sm *seatManager) CurrentDealerSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.dealerSeatID
}

func (sm *seatManager) CurrentSBSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.sbSeatID
}

func (sm *seatManager) CurrentBBSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.bbSeatID
}

func (sm *seatManager) IsInitPositions() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.isInitPositions
}

func (sm *seatManager) IsPlayerActive(playerID string) (bool, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	seatPlayer, _, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return false, err
	}

	return seatPlayer.Active(), nil
}

func (sm *seatManager) ActiveSeatIDs() []int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.getActiveSeatIDs()
}

// ClockwiseSeatIDs lists every seat id clockwise, starting left of startSeatID and ending with it.
func (sm *seatManager) ClockwiseSeatIDs(startSeatID int) []int {
	seatIDs := make([]int, 0, sm.maxSeat)
	for i := 1; i <= sm.maxSeat; i++ {
		seatIDs = append(seatIDs, (startSeatID+i+sm.maxSeat)%sm.maxSeat)
	}
	return seatIDs
}

func (sm *seatManager) Positions(seatID int) []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	positions, exist := sm.positions[seatID]
	if !exist {
		return []string{Position_Unknown}
	}

	cp := make([]string, len(positions))
	copy(cp, positions)
	return cp
}
