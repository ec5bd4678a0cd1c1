package service

import (
	"context"
	"errors"
	"log"

	"github.com/TakatsuMeow/voxuno/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	rules    RulesManager
	stats    StatsLedger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, rules RulesManager, stats StatsLedger) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		rules:    rules,
		stats:    stats,
	}
}

// Start creates a fresh session awaiting players.
func (s *gameServiceImpl) Start(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Create(sessionID, s.rules.GetDefault())
	if err != nil {
		if errors.Is(err, ErrAlreadyInProgress) {
			return nil, ErrAlreadyInProgress
		}
		return nil, err
	}
	return sessionInfo(sess), nil
}

// Reset force-deletes a session. Resetting a session that does not exist is
// reported, not silently ignored.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrNoSuchSession) {
			return ErrEmptySessionNoOp
		}
		return err
	}
	return nil
}

// ListSessions returns summaries of all live sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		result = append(result, sessionInfo(sess))
		sess.Unlock()
	}
	return result, nil
}

// Join adds a player to a pending session.
func (s *gameServiceImpl) Join(ctx context.Context, sessionID, player string) (*JoinResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Engine.Join(player); err != nil {
		return nil, err
	}
	s.persist(sessionID)

	return &JoinResult{
		SessionID: sessionID,
		Player:    player,
		Players:   len(sess.Engine.GetState().Players),
	}, nil
}

// Begin deals the opening hands and flips the first card.
func (s *gameServiceImpl) Begin(ctx context.Context, sessionID string) (*engine.BeginResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	result, err := sess.Engine.Begin()
	if err != nil {
		return nil, err
	}
	s.persist(sessionID)
	return result, nil
}

// Play resolves one card play. On a win the stats ledger is updated and the
// session is deleted; there is no retained "finished" state.
func (s *gameServiceImpl) Play(ctx context.Context, sessionID, player string, card engine.Card, declared engine.Color) (*engine.PlayResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	result, err := sess.Engine.Play(player, card, declared)
	if err != nil {
		return nil, err
	}

	if result.Victory {
		if err := s.stats.RecordWin(sessionID, player); err != nil {
			log.Printf("[STATS] Warning: win for %s in session %s not recorded: %v", player, sessionID, err)
		}
		if err := s.sessions.Delete(sessionID); err != nil {
			log.Printf("[SESSION] Warning: failed to delete finished session %s: %v", sessionID, err)
		}
		return result, nil
	}

	s.persist(sessionID)
	return result, nil
}

// Draw gives the current player one card and passes the turn.
func (s *gameServiceImpl) Draw(ctx context.Context, sessionID, player string) (*engine.DrawResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	result, err := sess.Engine.Draw(player)
	if err != nil {
		return nil, err
	}
	s.persist(sessionID)
	return result, nil
}

// Status returns the read-only session summary.
func (s *gameServiceImpl) Status(ctx context.Context, sessionID string) (*StatusInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	status := sess.Engine.Status()
	return &StatusInfo{
		SessionID:     sessionID,
		Players:       status.Players,
		Started:       status.Started,
		CurrentPlayer: status.CurrentPlayer,
		CurrentColor:  status.CurrentColor,
		TopCard:       status.TopCard,
		LastActive:    sess.LastActive(),
	}, nil
}

// Hand returns the caller's own hand. The transport layer is responsible
// for delivering it privately; nothing here ever exposes another player's
// cards.
func (s *gameServiceImpl) Hand(ctx context.Context, sessionID, player string) ([]engine.Card, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return sess.Engine.Hand(player)
}

// TopWinners ranks a session's players by win count. The ledger outlives
// live sessions, so this works after a game has finished.
func (s *gameServiceImpl) TopWinners(ctx context.Context, sessionID string, n int) ([]WinnerEntry, error) {
	return s.stats.TopN(sessionID, n), nil
}

// ListRules returns available rules presets.
func (s *gameServiceImpl) ListRules(ctx context.Context) ([]*RulesInfo, error) {
	return s.rules.ListRules()
}

// persist writes the session durably before the command returns. A single
// retry covers transient filesystem hiccups; beyond that the failure is
// surfaced in the log so recovery guarantees are not silently assumed.
func (s *gameServiceImpl) persist(sessionID string) {
	if err := s.sessions.Save(sessionID); err == nil {
		return
	}
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("[PERSIST] Warning: session %s state may not be durable: %v", sessionID, err)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	state := sess.Engine.GetState()
	return &SessionInfo{
		ID:         sess.ID,
		RulesName:  sess.Rules.Name,
		Players:    len(state.Players),
		Started:    state.Started,
		CreatedAt:  sess.CreatedAt,
		LastActive: sess.LastActive(),
	}
}
