package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/meso/internal/domain"
	"github.com/couchcryptid/meso/internal/observability"
)

// HazardFetcher retrieves the risk value for one hazard kind.
type HazardFetcher interface {
	FetchRisk(ctx context.Context, kind domain.HazardKind) (domain.RiskValue, error)
}

// ForecastFetcher retrieves the day-1 temperature forecast.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context) (domain.TemperatureForecast, error)
}

// SnapshotPublisher receives the snapshot of a completed activation.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap Snapshot) error
}

// Snapshot is the read model handed to the presentation layer: one slot per
// hazard kind, one for the forecast, and the current outlook selection.
type Snapshot struct {
	Hazards     map[domain.HazardKind]FetchState[domain.RiskValue]
	Forecast    FetchState[domain.TemperatureForecast]
	Outlook     OutlookVariant
	GeneratedAt time.Time
}

// MarshalJSON keys the hazard map by display label and attaches the static
// image references the view needs.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	hazards := make(map[string]FetchState[domain.RiskValue], len(s.Hazards))
	for kind, slot := range s.Hazards {
		hazards[kind.String()] = slot
	}
	return json.Marshal(struct {
		GeneratedAt  time.Time                               `json:"generated_at"`
		Outlook      string                                  `json:"outlook"`
		OutlookImage string                                  `json:"outlook_image"`
		ClimateImage string                                  `json:"climate_image"`
		Hazards      map[string]FetchState[domain.RiskValue] `json:"hazards"`
		Forecast     FetchState[domain.TemperatureForecast]  `json:"forecast"`
	}{
		GeneratedAt:  s.GeneratedAt,
		Outlook:      s.Outlook.String(),
		OutlookImage: s.Outlook.ImageURL(),
		ClimateImage: ClimateOutlookImageURL,
		Hazards:      hazards,
		Forecast:     s.Forecast,
	})
}

// session holds the slots of one activation. Fetches launched by an
// activation write only into their own session; a superseded session's
// late results are dropped rather than resurrecting terminal slots.
type session struct {
	hazards  map[domain.HazardKind]FetchState[domain.RiskValue]
	forecast FetchState[domain.TemperatureForecast]
}

func newSession() *session {
	s := &session{hazards: make(map[domain.HazardKind]FetchState[domain.RiskValue], len(domain.Kinds()))}
	for _, kind := range domain.Kinds() {
		s.hazards[kind] = FetchState[domain.RiskValue]{}
	}
	return s
}

// Activation is the handle for one launched fetch cycle.
type Activation struct {
	done chan struct{}
}

// Done is closed once every fetch of the activation has reached a terminal state.
func (a *Activation) Done() <-chan struct{} { return a.done }

// Wait blocks until the activation completes or the context is cancelled.
func (a *Activation) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Store owns the dashboard read model. Activation launches the four hazard
// fetches and the forecast fetch concurrently; each resolution transitions
// only its own slot, so a slow forecast never delays hazard rendering and
// vice versa. The store is an explicitly owned instance handed to the
// presentation layer, not ambient shared state.
type Store struct {
	hazards   HazardFetcher
	forecast  ForecastFetcher
	selection *OutlookSelection
	publisher SnapshotPublisher // optional
	logger    *slog.Logger
	metrics   *observability.Metrics

	// fetchTimeout bounds each upstream call so a dead upstream cannot leave
	// a slot pending forever.
	fetchTimeout time.Duration

	mu      sync.RWMutex
	current *session
	ready   atomic.Bool
}

// NewStore creates a Store. publisher may be nil to disable snapshot publishing.
func NewStore(hazards HazardFetcher, forecast ForecastFetcher, publisher SnapshotPublisher,
	logger *slog.Logger, metrics *observability.Metrics, fetchTimeout time.Duration) *Store {
	return &Store{
		hazards:      hazards,
		forecast:     forecast,
		selection:    NewOutlookSelection(),
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		fetchTimeout: fetchTimeout,
	}
}

// Activate starts a fresh fetch cycle: a new session with every slot pending,
// then all five fetches dispatched concurrently. Calling Activate again (a
// manual refresh) supersedes the previous session; fetches already in flight
// run to completion but their results are discarded.
func (s *Store) Activate(ctx context.Context) *Activation {
	sess := newSession()

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.metrics.ActivationsTotal.Inc()
	s.logger.Info("dashboard activated", "slots", len(domain.Kinds())+1)

	var wg sync.WaitGroup
	for _, kind := range domain.Kinds() {
		wg.Add(1)
		go func(kind domain.HazardKind) {
			defer wg.Done()
			s.runHazardFetch(ctx, sess, kind)
		}(kind)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runForecastFetch(ctx, sess)
	}()

	act := &Activation{done: make(chan struct{})}
	go func() {
		wg.Wait()
		close(act.done)
		s.publishCompleted(ctx, sess)
	}()
	return act
}

// CheckReadiness returns nil once at least one fetch has resolved, or an
// error describing why the dashboard is not yet ready.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no upstream fetch has resolved yet")
	}
	return nil
}

// SelectOutlook switches the displayed outlook map. Independent of fetch
// state: never invalidates or restarts any in-flight fetch.
func (s *Store) SelectOutlook(v OutlookVariant) {
	s.selection.Select(v)
	s.metrics.OutlookSelections.WithLabelValues(v.String()).Inc()
	s.logger.Debug("outlook selected", "variant", v.String())
}

// Outlook returns the currently selected map variant.
func (s *Store) Outlook() OutlookVariant {
	return s.selection.Current()
}

// Snapshot returns the current read model. Before the first activation every
// slot is pending.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Hazards:     make(map[domain.HazardKind]FetchState[domain.RiskValue], len(domain.Kinds())),
		Outlook:     s.selection.Current(),
		GeneratedAt: clock.Now(),
	}
	if s.current == nil {
		for _, kind := range domain.Kinds() {
			snap.Hazards[kind] = FetchState[domain.RiskValue]{}
		}
		return snap
	}
	for kind, slot := range s.current.hazards {
		snap.Hazards[kind] = slot
	}
	snap.Forecast = s.current.forecast
	return snap
}

func (s *Store) runHazardFetch(ctx context.Context, sess *session, kind domain.HazardKind) {
	value, err := fetchWithTimeout(ctx, s, func(fctx context.Context) (domain.RiskValue, error) {
		return s.hazards.FetchRisk(fctx, kind)
	}, kind.String())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != sess {
		// A refresh superseded this activation; drop the late result.
		return
	}
	if err != nil {
		sess.hazards[kind] = Failed[domain.RiskValue](err, clock.Now())
		s.logger.Warn("hazard fetch failed", "kind", kind.String(), "error", err)
		return
	}
	sess.hazards[kind] = Resolved(value, clock.Now())
	s.ready.Store(true)
}

func (s *Store) runForecastFetch(ctx context.Context, sess *session) {
	value, err := fetchWithTimeout(ctx, s, func(fctx context.Context) (domain.TemperatureForecast, error) {
		return s.forecast.FetchForecast(fctx)
	}, "forecast")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != sess {
		return
	}
	if err != nil {
		sess.forecast = Failed[domain.TemperatureForecast](err, clock.Now())
		s.logger.Warn("forecast fetch failed", "error", err)
		return
	}
	sess.forecast = Resolved(value, clock.Now())
	s.ready.Store(true)
}

// fetchWithTimeout runs one upstream call under the per-fetch deadline and
// records its metrics.
func fetchWithTimeout[T any](ctx context.Context, s *Store, fetch func(context.Context) (T, error), slot string) (T, error) {
	fctx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	s.metrics.ActiveFetches.Inc()
	defer s.metrics.ActiveFetches.Dec()

	start := time.Now()
	value, err := fetch(fctx)
	s.metrics.FetchDuration.WithLabelValues(slot).Observe(time.Since(start).Seconds())

	outcome := "resolved"
	if err != nil {
		outcome = "failed"
	}
	s.metrics.FetchesTotal.WithLabelValues(slot, outcome).Inc()
	return value, err
}

// publishCompleted hands the finished activation's snapshot to the optional
// publisher, unless a refresh has already superseded it.
func (s *Store) publishCompleted(ctx context.Context, sess *session) {
	if s.publisher == nil {
		return
	}

	s.mu.RLock()
	superseded := s.current != sess
	s.mu.RUnlock()
	if superseded {
		return
	}

	if err := s.publisher.PublishSnapshot(ctx, s.Snapshot()); err != nil {
		s.metrics.SnapshotPublishes.WithLabelValues("error").Inc()
		s.logger.Error("snapshot publish failed", "error", err)
		return
	}
	s.metrics.SnapshotPublishes.WithLabelValues("success").Inc()
}
