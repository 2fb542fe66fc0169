package pokerd

import (
	"errors"

	"github.com/pokerd/pokerd/action_validator"
	"github.com/pokerd/pokerd/deck"
)

var (
	ErrTableNotFound      = errors.New("table: not found")
	ErrTableFull          = errors.New("table: no empty seats available")
	ErrSeatUnavailable    = errors.New("table: seat is not available")
	ErrAlreadySeated      = errors.New("table: player already seated")
	ErrPlayerNotSeated    = errors.New("table: player not seated")
	ErrInvalidBuyIn       = errors.New("table: invalid buy-in")
	ErrInvalidSetting     = errors.New("table: invalid table setting")
	ErrTableClosed        = errors.New("table: table is closed")
	ErrTableNotRemovable  = errors.New("table: table is not removable")
	ErrHandInProgress     = errors.New("table: hand in progress")
	ErrNotEnoughPlayers   = errors.New("table: not enough players")
	ErrAutoStartDisabled  = errors.New("table: hands are started manually")
	ErrNotDealt           = errors.New("table: cards not dealt yet")
	ErrInvariantViolation = errors.New("table: invariant violation")

	// Validation errors of an action
	ErrOutOfTurn                = action_validator.ErrOutOfTurn
	ErrIllegalActionType        = action_validator.ErrIllegalActionType
	ErrBelowMinRaise            = action_validator.ErrBelowMinRaise
	ErrHandAlreadyComplete      = action_validator.ErrHandAlreadyComplete
	ErrConflictingSequenceToken = action_validator.ErrConflictingSequenceToken
	ErrTableFrozen              = action_validator.ErrTableFrozen

	ErrDeckExhausted = deck.ErrDeckExhausted
)

type ErrorKind string

const (
	ErrorKind_OutOfTurn                ErrorKind = "OutOfTurn"
	ErrorKind_IllegalActionType        ErrorKind = "IllegalActionType"
	ErrorKind_BelowMinRaise            ErrorKind = "BelowMinRaise"
	ErrorKind_TableFull                ErrorKind = "TableFull"
	ErrorKind_SeatUnavailable          ErrorKind = "SeatUnavailable"
	ErrorKind_AlreadySeated            ErrorKind = "AlreadySeated"
	ErrorKind_TableNotFound            ErrorKind = "TableNotFound"
	ErrorKind_PlayerNotSeated          ErrorKind = "PlayerNotSeated"
	ErrorKind_HandAlreadyComplete      ErrorKind = "HandAlreadyComplete"
	ErrorKind_ConflictingSequenceToken ErrorKind = "ConflictingSequenceToken"
	ErrorKind_InvalidBuyIn             ErrorKind = "InvalidBuyIn"
	ErrorKind_InvalidSetting           ErrorKind = "InvalidSetting"
	ErrorKind_TableClosed              ErrorKind = "TableClosed"
	ErrorKind_TableNotRemovable        ErrorKind = "TableNotRemovable"
	ErrorKind_HandInProgress           ErrorKind = "HandInProgress"
	ErrorKind_NotEnoughPlayers         ErrorKind = "NotEnoughPlayers"
	ErrorKind_AutoStartDisabled        ErrorKind = "AutoStartDisabled"
	ErrorKind_NotDealt                 ErrorKind = "NotDealt"
	ErrorKind_DeckExhausted            ErrorKind = "DeckExhausted"
	ErrorKind_InvariantViolation       ErrorKind = "InvariantViolation"
	ErrorKind_TableFrozen              ErrorKind = "TableFrozen"
	ErrorKind_Unknown                  ErrorKind = "Unknown"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrOutOfTurn, ErrorKind_OutOfTurn},
	{ErrIllegalActionType, ErrorKind_IllegalActionType},
	{ErrBelowMinRaise, ErrorKind_BelowMinRaise},
	{ErrTableFull, ErrorKind_TableFull},
	{ErrSeatUnavailable, ErrorKind_SeatUnavailable},
	{ErrAlreadySeated, ErrorKind_AlreadySeated},
	{ErrTableNotFound, ErrorKind_TableNotFound},
	{ErrPlayerNotSeated, ErrorKind_PlayerNotSeated},
	{ErrHandAlreadyComplete, ErrorKind_HandAlreadyComplete},
	{ErrConflictingSequenceToken, ErrorKind_ConflictingSequenceToken},
	{ErrInvalidBuyIn, ErrorKind_InvalidBuyIn},
	{ErrInvalidSetting, ErrorKind_InvalidSetting},
	{ErrTableClosed, ErrorKind_TableClosed},
	{ErrTableNotRemovable, ErrorKind_TableNotRemovable},
	{ErrHandInProgress, ErrorKind_HandInProgress},
	{ErrNotEnoughPlayers, ErrorKind_NotEnoughPlayers},
	{ErrAutoStartDisabled, ErrorKind_AutoStartDisabled},
	{ErrNotDealt, ErrorKind_NotDealt},
	{ErrDeckExhausted, ErrorKind_DeckExhausted},
	{ErrInvariantViolation, ErrorKind_InvariantViolation},
	{ErrTableFrozen, ErrorKind_TableFrozen},
}

// KindOf classifies an engine error.
func KindOf(err error) ErrorKind {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return ErrorKind_Unknown
}

// IsFatal reports whether the error froze the table.
func IsFatal(err error) bool {
	return IsFatalKind(KindOf(err))
}

func IsFatalKind(kind ErrorKind) bool {
	switch kind {
	case ErrorKind_InvariantViolation, ErrorKind_DeckExhausted, ErrorKind_TableFrozen:
		return true
	}
	return false
}
