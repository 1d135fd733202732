package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/config"
	"github.com/qaz17899/game-hub/internal/domain"
)

// stubPlinkoService is a hand-rolled plinko.Service double
type stubPlinkoService struct {
	receipt  *domain.DropReceipt
	dropErr  error
	balls    []domain.BallSummary
	layout   *board.Layout
	capacity int
	minWager int64
	maxWager int64

	lastWager int64
}

func (s *stubPlinkoService) Drop(_ context.Context, wager int64) (*domain.DropReceipt, error) {
	s.lastWager = wager
	if s.dropErr != nil {
		return nil, s.dropErr
	}
	return s.receipt, nil
}

func (s *stubPlinkoService) InFlight() []domain.BallSummary { return s.balls }
func (s *stubPlinkoService) InFlightCount() int             { return len(s.balls) }
func (s *stubPlinkoService) Cap() int                       { return s.capacity }
func (s *stubPlinkoService) MinWager() int64                { return s.minWager }
func (s *stubPlinkoService) MaxWager() int64                { return s.maxWager }
func (s *stubPlinkoService) Layout() *board.Layout          { return s.layout }
func (s *stubPlinkoService) Shutdown(context.Context) error { return nil }

func testLayout(t *testing.T) *board.Layout {
	t.Helper()
	layout, err := board.New(config.PlinkoConfig{
		RowCount:     config.DefaultRowCount,
		BasePegCount: config.DefaultBasePegCount,
		PegGap:       config.DefaultPegGap,
		RowGap:       config.DefaultRowGap,
		StartY:       config.DefaultStartY,
		BoardWidth:   config.DefaultBoardWidth,
		BoardHeight:  config.DefaultBoardHeight,
		Multipliers:  []float64{10, 5, 2, 1.5, 0.6, 0.3, 0.2, 0.3, 0.6, 1.5, 2, 5, 10},
	})
	require.NoError(t, err)
	return layout
}

// failingStore implements storage.Store and fails every operation
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Read(context.Context, string) (string, bool, error) {
	return "", false, errStoreDown
}
func (failingStore) Write(context.Context, string, string) error { return errStoreDown }
func (failingStore) Ping(context.Context) error                  { return errStoreDown }
func (failingStore) Close()                                      {}
