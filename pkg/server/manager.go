package server

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/middleware"
	"github.com/vango-dev/refstore/pkg/vdom"
)

// SessionManager tracks live sessions, enforces the session limit and closes
// idle sessions.
type SessionManager struct {
	sessions map[string]*Session
	pending  int // slots reserved by Create calls still mounting
	mu       sync.RWMutex

	config      *SessionConfig
	maxSessions int
	metrics     *middleware.Metrics
	logger      *slog.Logger

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	peakSessions int

	done           chan struct{}
	cleanupDone    chan struct{}
	cleanupStarted atomic.Bool
	stopOnce       sync.Once
}

// ManagerStats is a snapshot of session counters.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	Peak         int
}

// NewSessionManager creates a manager. maxSessions <= 0 means no limit.
func NewSessionManager(config *SessionConfig, maxSessions int, metrics *middleware.Metrics, logger *slog.Logger) *SessionManager {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default().With("component", "sessions")
	}
	return &SessionManager{
		sessions:    make(map[string]*Session),
		config:      config,
		maxSessions: maxSessions,
		metrics:     metrics,
		logger:      logger,
		done:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Create mounts a new session for root and tracks it. The slot is reserved
// before mounting so concurrent calls cannot exceed the limit. On mount
// failure the session is closed, the slot released and the error returned.
func (sm *SessionManager) Create(root func() *vdom.VNode) (*Session, error) {
	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions)+sm.pending >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, errors.New("E114").WithDetail("limit " + strconv.Itoa(sm.maxSessions))
	}
	sm.pending++
	sm.mu.Unlock()

	sess := NewSession(root, sm.config, sm.logger, sm.metrics)
	if err := sess.Mount(); err != nil {
		sess.Close()
		sm.mu.Lock()
		sm.pending--
		sm.mu.Unlock()
		return nil, err
	}

	sm.mu.Lock()
	sm.pending--
	sm.sessions[sess.ID] = sess
	if len(sm.sessions) > sm.peakSessions {
		sm.peakSessions = len(sm.sessions)
	}
	sm.mu.Unlock()
	sm.totalCreated.Add(1)

	return sess, nil
}

// Get returns a session by ID, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Close closes and forgets a session.
func (sm *SessionManager) Close(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if ok {
		sess.Close()
		sm.totalClosed.Add(1)
	}
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Stats returns the manager counters.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return ManagerStats{
		Active:       len(sm.sessions),
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
		Peak:         sm.peakSessions,
	}
}

// StartCleanup closes sessions idle for longer than IdleTimeout, checking
// every interval, until Shutdown.
func (sm *SessionManager) StartCleanup(interval time.Duration) {
	if interval <= 0 || sm.cleanupStarted.Swap(true) {
		return
	}
	go func() {
		defer close(sm.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sm.done:
				return
			case <-ticker.C:
				sm.cleanupExpired(time.Now())
			}
		}
	}()
}

func (sm *SessionManager) cleanupExpired(now time.Time) int {
	if sm.config.IdleTimeout <= 0 {
		return 0
	}

	var expired []string
	sm.mu.RLock()
	for id, sess := range sm.sessions {
		if now.Sub(sess.LastActive()) > sm.config.IdleTimeout {
			expired = append(expired, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range expired {
		sm.logger.Info("closing idle session", "session_id", id)
		sm.Close(id)
	}
	return len(expired)
}

// Shutdown stops the cleanup loop and closes every session.
func (sm *SessionManager) Shutdown() {
	sm.stopOnce.Do(func() { close(sm.done) })
	if sm.cleanupStarted.Load() {
		<-sm.cleanupDone
	}

	sm.mu.RLock()
	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	sm.mu.RUnlock()

	for _, id := range ids {
		sm.Close(id)
	}
}
