package seat_manager

// newPositions returns position labels clockwise from the dealer.
func newPositions(playerCount int) [][]string {
	switch playerCount {
	case 10:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_UG2}, {Position_UG3}, {Position_MP}, {Position_MP2}, {Position_HJ}, {Position_CO}}
	case 9:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_UG2}, {Position_MP}, {Position_MP2}, {Position_HJ}, {Position_CO}}
	case 8:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_UG2}, {Position_MP}, {Position_HJ}, {Position_CO}}
	case 7:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_MP}, {Position_HJ}, {Position_CO}}
	case 6:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_HJ}, {Position_CO}}
	case 5:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}, {Position_CO}}
	case 4:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}, {Position_UG}}
	case 3:
		return [][]string{{Position_Dealer}, {Position_SB}, {Position_BB}}
	case 2:
		return [][]string{{Position_Dealer, Position_SB}, {Position_BB}}
	default:
		return make([][]string, 0)
	}
}
