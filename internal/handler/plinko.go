package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/history"
	"github.com/qaz17899/game-hub/internal/plinko"
)

// DefaultRecentLimit is the number of rounds returned when no limit is given
const DefaultRecentLimit = 20

// MaxRecentLimit caps the number of rounds a single query can request
const MaxRecentLimit = 100

type PlinkoHandler struct {
	service    plinko.Service
	historySvc history.Service
}

func NewPlinkoHandler(service plinko.Service, historySvc history.Service) *PlinkoHandler {
	return &PlinkoHandler{
		service:    service,
		historySvc: historySvc,
	}
}

type DropRequest struct {
	Wager int64 `json:"wager" validate:"required,gt=0"`
}

// HandleDrop accepts a wager and launches a ball.
// The wager is debited before the response is written.
func (h *PlinkoHandler) HandleDrop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Drop ball"); err != nil {
		return
	}

	receipt, err := h.service.Drop(r.Context(), req.Wager)
	if err != nil {
		respondServiceError(w, r, "Failed to drop ball", err)
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}

// BoardResponse describes the board geometry for the client renderer
type BoardResponse struct {
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	SensorY     float64        `json:"sensor_y"`
	Rows        [][]board.Peg  `json:"rows"`
	Buckets     []board.Bucket `json:"buckets"`
	Multipliers []float64      `json:"multipliers"`
	MinWager    int64          `json:"min_wager"`
	MaxWager    int64          `json:"max_wager"`
	MaxInFlight int            `json:"max_in_flight"`
}

// HandleGetBoard returns the board geometry and payout table
func (h *PlinkoHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	layout := h.service.Layout()
	respondJSON(w, http.StatusOK, BoardResponse{
		Width:       layout.Width(),
		Height:      layout.Height(),
		SensorY:     layout.SensorY(),
		Rows:        layout.Pegs(),
		Buckets:     layout.Buckets(),
		Multipliers: layout.Multipliers(),
		MinWager:    h.service.MinWager(),
		MaxWager:    h.service.MaxWager(),
		MaxInFlight: h.service.Cap(),
	})
}

// InFlightResponse reports the active balls against the concurrency cap
type InFlightResponse struct {
	Count int                  `json:"count"`
	Cap   int                  `json:"cap"`
	Balls []domain.BallSummary `json:"balls"`
}

// HandleGetInFlight returns the balls currently on the board
func (h *PlinkoHandler) HandleGetInFlight(w http.ResponseWriter, r *http.Request) {
	balls := h.service.InFlight()
	respondJSON(w, http.StatusOK, InFlightResponse{
		Count: len(balls),
		Cap:   h.service.Cap(),
		Balls: balls,
	})
}

// RecentRoundsResponse wraps a page of finished rounds
type RecentRoundsResponse struct {
	Rounds []domain.RoundResult `json:"rounds"`
}

// HandleGetRecentRounds returns finished rounds, newest first
func (h *PlinkoHandler) HandleGetRecentRounds(w http.ResponseWriter, r *http.Request) {
	limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(DefaultRecentLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rounds := h.historySvc.Recent(limit)
	if rounds == nil {
		rounds = []domain.RoundResult{}
	}
	respondJSON(w, http.StatusOK, RecentRoundsResponse{Rounds: rounds})
}

// HandleGetRound returns a single finished round by ball ID
func (h *PlinkoHandler) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidRoundID, http.StatusBadRequest)
		return
	}

	round, found := h.historySvc.Round(id)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgRoundNotFoundError)
		return
	}

	respondJSON(w, http.StatusOK, round)
}
