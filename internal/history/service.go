package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
)

// Service provides read-only access to recently finished rounds.
// Settled and voided rounds both count as finished.
type Service interface {
	// Round returns the result of a finished round by ball ID.
	Round(id uuid.UUID) (domain.RoundResult, bool)

	// Recent returns up to n finished rounds, newest first.
	Recent(n int) []domain.RoundResult

	// Len returns the number of retained rounds.
	Len() int
}

type service struct {
	rounds *lru.Cache[uuid.UUID, domain.RoundResult]
}

// NewService creates a round history that retains the last size finished
// rounds, populated from round events on the bus.
func NewService(size int, bus event.Bus) (Service, error) {
	cache, err := lru.New[uuid.UUID, domain.RoundResult](size)
	if err != nil {
		return nil, err
	}

	s := &service{rounds: cache}
	bus.Subscribe(event.RoundSettled, s.onRoundSettled)
	bus.Subscribe(event.RoundVoided, s.onRoundVoided)
	return s, nil
}

func (s *service) Round(id uuid.UUID) (domain.RoundResult, bool) {
	// Peek so queries do not perturb the eviction order
	return s.rounds.Peek(id)
}

func (s *service) Recent(n int) []domain.RoundResult {
	if n <= 0 {
		return nil
	}

	// Keys are ordered oldest to newest
	keys := s.rounds.Keys()
	if n > len(keys) {
		n = len(keys)
	}

	results := make([]domain.RoundResult, 0, n)
	for i := len(keys) - 1; i >= 0 && len(results) < n; i-- {
		if result, ok := s.rounds.Peek(keys[i]); ok {
			results = append(results, result)
		}
	}
	return results
}

func (s *service) Len() int {
	return s.rounds.Len()
}

func (s *service) onRoundSettled(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.RoundSettledPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDecodeFailed, "event_type", evt.Type, "error", err)
		return err
	}

	id, err := uuid.Parse(payload.BallID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadBallID, "ball_id", payload.BallID, "error", err)
		return err
	}

	s.rounds.Add(id, domain.RoundResult{
		BallID:     id,
		Wager:      payload.Wager,
		Bucket:     payload.Bucket,
		Multiplier: payload.Multiplier,
		WinAmount:  payload.WinAmount,
		Profit:     payload.Profit,
		Balance:    payload.Balance,
		SettledAt:  unixTime(payload.Timestamp),
	})
	return nil
}

func unixTime(ts int64) time.Time {
	return time.Unix(ts, 0)
}

func (s *service) onRoundVoided(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.RoundVoidedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDecodeFailed, "event_type", evt.Type, "error", err)
		return err
	}

	id, err := uuid.Parse(payload.BallID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadBallID, "ball_id", payload.BallID, "error", err)
		return err
	}

	// A voided round refunds the stake, so its profit is zero
	s.rounds.Add(id, domain.RoundResult{
		BallID:    id,
		Wager:     payload.Wager,
		Balance:   payload.Balance,
		Voided:    true,
		SettledAt: unixTime(payload.Timestamp),
	})
	return nil
}
