package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokerd/pokerd"
	"github.com/pokerd/pokerd/deck"
)

var (
	ErrInvalidRequest = errors.New("server: invalid request body")
	ErrUnknownStreet  = errors.New("server: unknown street")
)

type CreateTableRequest struct {
	TableID      string `json:"table_id"`
	Name         string `json:"name"`
	SmallBlind   int64  `json:"small_blind"`
	BigBlind     int64  `json:"big_blind"`
	SeatCapacity int    `json:"seat_capacity"`
	MinBuyIn     int64  `json:"min_buy_in"`
	MaxBuyIn     int64  `json:"max_buy_in"`
}

type JoinRequest struct {
	BuyIn int64 `json:"buy_in"`
	Seat  *int  `json:"seat"` // nil: any empty seat
}

type JoinResponse struct {
	Seat int `json:"seat"`
}

type ActionRequest struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Sequence int64  `json:"sequence"`
}

type CardsResponse struct {
	Cards []deck.Card `json:"cards"`
}

type ErrorResponse struct {
	Kind    pokerd.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

// street: board size
var streets = map[string]int{
	"flop":  3,
	"turn":  4,
	"river": 5,
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.ListTableIDs())
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	setting := s.options.DefaultSetting
	setting.TableID = req.TableID
	setting.Name = req.Name
	if req.SmallBlind > 0 {
		setting.SmallBlind = req.SmallBlind
	}
	if req.BigBlind > 0 {
		setting.BigBlind = req.BigBlind
	}
	if req.SeatCapacity > 0 {
		setting.SeatCapacity = req.SeatCapacity
	}
	if req.MinBuyIn > 0 {
		setting.MinBuyIn = req.MinBuyIn
	}
	if req.MaxBuyIn > 0 {
		setting.MaxBuyIn = req.MaxBuyIn
	}

	table, err := s.manager.CreateTable(s.options.EngineOptions, s.newCallbacks(), setting)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, table)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	engine, err := s.manager.GetTableEngine(chi.URLParam(r, "tableID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, engine.GetTable())
}

func (s *Server) handleRemoveTable(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.RemoveTable(chi.URLParam(r, "tableID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	seat := pokerd.UnsetValue
	if req.Seat != nil {
		seat = *req.Seat
	}

	seatID, err := s.manager.JoinTable(chi.URLParam(r, "tableID"), PlayerIDFromContext(r.Context()), req.BuyIn, seat)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, JoinResponse{Seat: seatID})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.LeaveTable(chi.URLParam(r, "tableID"), PlayerIDFromContext(r.Context())); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.PlayerReady(chi.URLParam(r, "tableID"), PlayerIDFromContext(r.Context())); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartHand(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.StartHand(chi.URLParam(r, "tableID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseTable(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.CloseTable(chi.URLParam(r, "tableID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	table, err := s.manager.SubmitAction(chi.URLParam(r, "tableID"), pokerd.PlayerAction{
		PlayerID: PlayerIDFromContext(r.Context()),
		Type:     req.Type,
		Amount:   req.Amount,
		Sequence: req.Sequence,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleHoleCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.manager.GetHoleCards(chi.URLParam(r, "tableID"), PlayerIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CardsResponse{Cards: cards})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	size, ok := streets[chi.URLParam(r, "street")]
	if !ok {
		s.writeError(w, ErrUnknownStreet)
		return
	}

	engine, err := s.manager.GetTableEngine(chi.URLParam(r, "tableID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	table := engine.GetTable()
	board := table.State.CommunityCards
	if len(board) < size {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Kind:    pokerd.ErrorKind_NotDealt,
			Message: "too soon",
		})
		return
	}

	// flop: 3 cards, turn and river: the single card of that street
	cards := board[:size]
	if size > 3 {
		cards = board[size-1 : size]
	}
	writeJSON(w, http.StatusOK, CardsResponse{Cards: cards})
}

func (s *Server) newCallbacks() *pokerd.TableEngineCallbacks {
	callbacks := pokerd.NewTableEngineCallbacks()
	callbacks.OnTableStateUpdated = s.hub.Publish
	callbacks.OnEngineError = func(e *pokerd.EngineError) {
		s.logger.Warn().
			Str("table", e.TableID).
			Str("player", e.PlayerID).
			Str("kind", string(e.Kind)).
			Msg(e.Message)
	}
	return callbacks
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrUnknownStreet):
		return http.StatusBadRequest
	}

	switch pokerd.KindOf(err) {
	case pokerd.ErrorKind_TableNotFound, pokerd.ErrorKind_PlayerNotSeated:
		return http.StatusNotFound
	case pokerd.ErrorKind_IllegalActionType,
		pokerd.ErrorKind_BelowMinRaise,
		pokerd.ErrorKind_InvalidBuyIn,
		pokerd.ErrorKind_InvalidSetting:
		return http.StatusBadRequest
	case pokerd.ErrorKind_OutOfTurn,
		pokerd.ErrorKind_ConflictingSequenceToken,
		pokerd.ErrorKind_HandAlreadyComplete,
		pokerd.ErrorKind_HandInProgress,
		pokerd.ErrorKind_NotEnoughPlayers,
		pokerd.ErrorKind_AutoStartDisabled,
		pokerd.ErrorKind_NotDealt,
		pokerd.ErrorKind_TableFull,
		pokerd.ErrorKind_SeatUnavailable,
		pokerd.ErrorKind_AlreadySeated,
		pokerd.ErrorKind_TableClosed,
		pokerd.ErrorKind_TableNotRemovable:
		return http.StatusConflict
	case pokerd.ErrorKind_TableFrozen:
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}

	resp := ErrorResponse{Message: err.Error()}
	if kind := pokerd.KindOf(err); kind != pokerd.ErrorKind_Unknown {
		resp.Kind = kind
	}
	writeJSON(w, status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}
