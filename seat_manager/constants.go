package seat_manager

const (
	UnsetSeatID = -1

	MinSeatCount = 2
	MaxSeatCount = 10

	// Positions
	Position_Unknown = "unknown"
	Position_Dealer  = "dealer"
	Position_SB      = "sb"
	Position_BB      = "bb"
	Position_UG      = "ug"
	Position_UG2     = "ug2"
	Position_UG3     = "ug3"
	Position_MP      = "mp"
	Position_MP2     = "mp2"
	Position_HJ      = "hj"
	Position_CO      = "co"
)
