package pokerd

const (
	// General
	UnsetValue = -1

	// Hand shape
	HoleCardCount      = 2
	CommunityCardCount = 5
)

type Phase string

const (
	Phase_WaitingForPlayers Phase = "waiting_for_players" // 等待玩家
	Phase_PreFlop           Phase = "preflop"             // 翻牌前
	Phase_Flop              Phase = "flop"                // 翻牌
	Phase_Turn              Phase = "turn"                // 轉牌
	Phase_River             Phase = "river"               // 河牌
	Phase_Showdown          Phase = "showdown"            // 攤牌
	Phase_HandComplete      Phase = "hand_complete"       // 本手結束
)

// IsBetting reports whether players act in this phase.
func (p Phase) IsBetting() bool {
	switch p {
	case Phase_PreFlop, Phase_Flop, Phase_Turn, Phase_River:
		return true
	}
	return false
}

// CommunityCards is the board size once the phase is dealt.
func (p Phase) CommunityCards() int {
	switch p {
	case Phase_Flop:
		return 3
	case Phase_Turn:
		return 4
	case Phase_River, Phase_Showdown:
		return 5
	}
	return 0
}

type SeatStatus string

const (
	SeatStatus_Empty      SeatStatus = "empty"
	SeatStatus_Active     SeatStatus = "active"
	SeatStatus_Folded     SeatStatus = "folded"
	SeatStatus_AllIn      SeatStatus = "allin"
	SeatStatus_SittingOut SeatStatus = "sitting_out"
)

// IsContending reports whether the seat can still win chips in this hand.
func (s SeatStatus) IsContending() bool {
	return s == SeatStatus_Active || s == SeatStatus_AllIn
}

const (
	// Action types accepted by SubmitAction
	ActionType_Fold  = "fold"
	ActionType_Check = "check"
	ActionType_Call  = "call"
	ActionType_Bet   = "bet"
	ActionType_Raise = "raise"
	ActionType_AllIn = "allin"
)
