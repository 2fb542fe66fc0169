package seat_manager

import (
	"math/rand"
	"sort"
	"time"
)

func (sm *seatManager) randomSeatIDs(count int) ([]int, error) {
	emptySeatIDs := sm.getEmptySeatIDs()

	if len(emptySeatIDs) < count {
		return nil, ErrNotEnoughSeats
	}

	r := sm.newRandom()
	r.Shuffle(len(emptySeatIDs), func(i, j int) {
		emptySeatIDs[i], emptySeatIDs[j] = emptySeatIDs[j], emptySeatIDs[i]
	})

	return emptySeatIDs[:count], nil
}

func (sm *seatManager) getEmptySeatIDs() []int {
	emptySeatIDs := make([]int, 0)
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer == nil {
			emptySeatIDs = append(emptySeatIDs, seatID)
		}
	}
	sort.Ints(emptySeatIDs)
	return emptySeatIDs
}

func (sm *seatManager) getActiveSeatIDs() []int {
	seatIDs := make([]int, 0)
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer != nil && seatPlayer.Active() {
			seatIDs = append(seatIDs, seatID)
		}
	}
	sort.Ints(seatIDs)
	return seatIDs
}

func (sm *seatManager) getSeatPlayer(playerID string) (*SeatPlayer, int, error) {
	for seat, seatPlayer := range sm.seats {
		if seatPlayer != nil && seatPlayer.ID == playerID {
			return seatPlayer, seat, nil
		}
	}
	return nil, UnsetSeatID, ErrPlayerNotFound
}

func (sm *seatManager) newRandom() *rand.Rand {
	seed := time.Now().UnixNano()
	source := rand.NewSource(seed)
	return rand.New(source)
}

func (sm *seatManager) nextActiveSeatID(startSeatID int) int {
	for i := 1; i <= sm.maxSeat; i++ {
		seatID := (startSeatID + i) % sm.maxSeat
		if sp, exist := sm.seats[seatID]; exist && sp != nil && sp.Active() {
			return seatID
		}
	}
	return UnsetSeatID
}

func (sm *seatManager) getPlayerCountBy(matcher func(sp *SeatPlayer) bool) int {
	count := 0
	for _, seatPlayer := range sm.seats {
		if seatPlayer != nil && matcher(seatPlayer) {
			count++
		}
	}
	return count
}

/*
rotatePositions 決定本手 Dealer、SB、BB
  - 第一手: 座位編號最小的有效玩家為 Dealer
  - 之後: Dealer 往下家找第一個有效玩家

- 2 人
  - Dealer 同時為 SB，另一位為 BB

- 超過 2 人
  - Dealer 下家為 SB，SB 下家為 BB
*/
func (sm *seatManager) rotatePositions() error {
	activeSeatIDs := sm.getActiveSeatIDs()
	if len(activeSeatIDs) < 2 {
		return ErrUnableToRotatePositions
	}

	if !sm.isInitPositions || sm.dealerSeatID == UnsetSeatID {
		sm.dealerSeatID = activeSeatIDs[0]
	} else {
		sm.dealerSeatID = sm.nextActiveSeatID(sm.dealerSeatID)
	}

	if len(activeSeatIDs) == 2 {
		sm.sbSeatID = sm.dealerSeatID
		sm.bbSeatID = sm.nextActiveSeatID(sm.dealerSeatID)
	} else {
		sm.sbSeatID = sm.nextActiveSeatID(sm.dealerSeatID)
		sm.bbSeatID = sm.nextActiveSeatID(sm.sbSeatID)
	}

	// positions from dealer, clockwise
	sm.positions = make(map[int][]string)
	labels := newPositions(len(activeSeatIDs))
	seatID := sm.dealerSeatID
	for i := 0; i < len(labels); i++ {
		sm.positions[seatID] = labels[i]
		seatID = sm.nextActiveSeatID(seatID)
	}

	sm.isInitPositions = true
	return nil
}

func (sm *seatManager) newSeatPlayer(playerID string) SeatPlayer {
	return SeatPlayer{
		ID:       playerID,
		IsIn:     true,
		HasChips: false,
	}
}
