// Package engine is the simulation kernel: the session state machine, the
// turn and month advancement pipeline, trading operations, the game-over
// finalizer, and the contextual-character trigger policy. Every exported
// method is an engine verb. StartNewSession takes only the owning user;
// every other verb takes an actor identity and a session ID and enforces
// ownership. The session-mutating verbs return (*model.Result, error);
// GetNextCard returns the next card and GetMarketStatus a market snapshot.
// Validation, gating, ownership and not-found failures are returned as
// *model.EngineError; persistence failures are returned as ordinary wrapped
// errors, not as *model.EngineError.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/forecast"
	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/scenario"
	"github.com/arthneeti/engine/internal/store"
)

// safeRand wraps a math/rand source with a mutex so the engine's single
// generator can be shared across concurrently-running sessions; the
// store's per-session lock only serializes a single session's operations,
// not the engine's use of shared randomness across sessions.
type safeRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newSafeRand(seed int64) *safeRand {
	return &safeRand{r: rand.New(rand.NewSource(seed))}
}

// newLocalRand builds a standalone generator for one-shot, session-scoped
// work (e.g. a session's cold-start price trajectory) that doesn't need to
// contend with the engine's shared safeRand.
func newLocalRand(seed int) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

func (s *safeRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *safeRand) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Engine bundles the dependencies every verb needs: tuning constants,
// persistence, the scenario selector, and the LLM collaborators.
type Engine struct {
	cfg       *config.Config
	store     *store.Store
	selector  *scenario.Selector
	advisor   *llm.Advisor
	reportGen *llm.ReportGenerator
	forecast  *forecast.Provider
	rng       *safeRand
}

// New wires an Engine from its collaborators. selector, advisor and
// reportGen may embed nil LLM clients; forecastProvider may be disabled
// (empty URL) — every such collaborator's fallback is unconditional.
func New(cfg *config.Config, st *store.Store, selector *scenario.Selector, advisor *llm.Advisor, reportGen *llm.ReportGenerator, forecastProvider *forecast.Provider, seed int64) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     st,
		selector:  selector,
		advisor:   advisor,
		reportGen: reportGen,
		forecast:  forecastProvider,
		rng:       newSafeRand(seed),
	}
}

// checkOwnership loads the aggregate and verifies the actor owns it.
func (e *Engine) checkOwnership(agg *store.Aggregate, actorID string) error {
	if agg.Session.UserID != actorID {
		return model.NewErrorf(model.ErrPermissionDenied, "you do not own this game session", "session=%s actor=%s", agg.Session.ID, actorID)
	}
	return nil
}

// load fetches and ownership-checks a session aggregate.
func (e *Engine) load(ctx context.Context, sessionID, actorID string) (*store.Aggregate, error) {
	agg, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := e.checkOwnership(agg, actorID); err != nil {
		return nil, err
	}
	return agg, nil
}

func clampHappiness(cfg *config.Config, v int) int {
	return config.Clamp(v, cfg.MinHappiness, cfg.MaxHappiness)
}

func clampCredit(cfg *config.Config, v int) int {
	return config.Clamp(v, cfg.MinCredit, cfg.MaxCredit)
}

func appendLog(sess *model.Session, entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if sess.GameplayLog != "" {
		sess.GameplayLog = sess.GameplayLog + "\n" + entry
	} else {
		sess.GameplayLog = entry
	}
}
