// Package lifecycle owns the canonical in-memory pet records and drives the
// periodic simulation: decay ticks, need/alert refreshes, trend sampling and
// optional auto-care. Persistence is optimistic: memory commits first and a
// failed save only flags the pet as sync-pending.
package lifecycle

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/sched"
)

var (
	ErrNoPet            = errors.New("no pet adopted")
	ErrActionInProgress = errors.New("another action is in progress")
)

type ActionState string

const (
	StateIdle     ActionState = "idle"
	StateAdopting ActionState = "adopting"
	StateFeeding  ActionState = "feeding"
	StatePlaying  ActionState = "playing"
	StateCaring   ActionState = "caring"
	StateEvolving ActionState = "evolving"
)

type Config struct {
	HungerInterval time.Duration
	HealthInterval time.Duration
	NeedInterval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		HungerInterval: time.Minute,
		HealthInterval: 5 * time.Minute,
		NeedInterval:   30 * time.Second,
	}
}

type AutoCare struct {
	Enabled       bool `json:"enabled"`
	FeedThreshold int  `json:"feed_threshold"`
	PlayThreshold int  `json:"play_threshold"`
}

type Status struct {
	State       ActionState `json:"state"`
	SyncPending bool        `json:"sync_pending"`
	AutoCare    AutoCare    `json:"auto_care"`
}

type monitor struct {
	pet         pet.Pet
	state       ActionState
	alerts      []pet.HealthAlert
	trends      []pet.HealthTrend
	autoCare    AutoCare
	syncPending bool
	cancels     []sched.CancelFunc
}

type Store struct {
	Repo      ports.PetRepository
	Scheduler sched.Scheduler
	Cfg       Config

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
	// OnAlert fires for every newly stored alert, outside the store lock.
	OnAlert func(petID string, alert pet.HealthAlert)
	// DefaultAutoCare is applied to every pet entering the store. Owners can
	// change it per pet afterwards.
	DefaultAutoCare AutoCare

	mu       sync.Mutex
	monitors map[string]*monitor
	owners   map[string]string
}

func NewStore(repo ports.PetRepository, scheduler sched.Scheduler, cfg Config) *Store {
	if cfg.HungerInterval <= 0 {
		cfg.HungerInterval = DefaultConfig().HungerInterval
	}
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = DefaultConfig().HealthInterval
	}
	if cfg.NeedInterval <= 0 {
		cfg.NeedInterval = DefaultConfig().NeedInterval
	}
	return &Store{
		Repo:      repo,
		Scheduler: scheduler,
		Cfg:       cfg,
		Now:       time.Now,
		NewID:     uuid.NewString,
		monitors:  map[string]*monitor{},
		owners:    map[string]string{},
	}
}

// Adopt registers a new pet, persists it and starts its monitors. An owner
// can hold only one pet.
func (s *Store) Adopt(ctx context.Context, p pet.Pet) (pet.Pet, error) {
	s.mu.Lock()
	if _, exists := s.owners[p.OwnerID]; exists {
		s.mu.Unlock()
		return pet.Pet{}, ports.ErrConflict
	}
	m := &monitor{pet: p, state: StateAdopting, autoCare: s.DefaultAutoCare}
	s.monitors[p.ID] = m
	s.owners[p.OwnerID] = p.ID
	s.mu.Unlock()

	s.persist(ctx, p.ID, p)

	s.mu.Lock()
	m.state = StateIdle
	s.mu.Unlock()

	s.StartMonitoring(p.ID)
	return p, nil
}

// Resolve returns the canonical pet for an owner, with hunger refreshed from
// elapsed time. Pets not yet in memory are loaded from the repository and
// put under monitoring.
func (s *Store) Resolve(ctx context.Context, ownerID string) (pet.Pet, error) {
	s.mu.Lock()
	if petID, ok := s.owners[ownerID]; ok {
		m := s.monitors[petID]
		s.refreshHungerLocked(m)
		snapshot := m.pet
		s.mu.Unlock()
		return snapshot, nil
	}
	s.mu.Unlock()

	loaded, err := s.Repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return pet.Pet{}, ErrNoPet
		}
		return pet.Pet{}, err
	}

	s.mu.Lock()
	// Another caller may have raced the load.
	if petID, ok := s.owners[ownerID]; ok {
		m := s.monitors[petID]
		s.refreshHungerLocked(m)
		snapshot := m.pet
		s.mu.Unlock()
		return snapshot, nil
	}
	m := &monitor{pet: loaded, state: StateIdle, autoCare: s.DefaultAutoCare}
	s.monitors[loaded.ID] = m
	s.owners[ownerID] = loaded.ID
	s.refreshHungerLocked(m)
	snapshot := m.pet
	s.mu.Unlock()

	s.StartMonitoring(loaded.ID)
	return snapshot, nil
}

func (s *Store) refreshHungerLocked(m *monitor) {
	m.pet.Vitals.Hunger = pet.HungerFromElapsed(m.pet.LastFed, s.Now(), m.pet.BaseHunger)
}

// WithAction runs a mutation under the pet's action flag. A second action
// attempted while one is in flight is rejected, not queued. Hunger is
// refreshed before fn so care logic sees current values. On success the new
// state is persisted best-effort; on error the pet is left as it was.
//
// fn runs on a private copy without holding the store lock: the busy flag
// keeps other actions out and ticks skip busy pets, so a slow payment call
// inside fn never stalls queries or other pets' ticks.
func (s *Store) WithAction(ctx context.Context, petID string, state ActionState, fn func(p *pet.Pet) error) (pet.Pet, error) {
	s.mu.Lock()
	m, ok := s.monitors[petID]
	if !ok {
		s.mu.Unlock()
		return pet.Pet{}, ErrNoPet
	}
	if m.state != StateIdle {
		s.mu.Unlock()
		return pet.Pet{}, ErrActionInProgress
	}
	m.state = state
	working := m.pet
	s.mu.Unlock()

	working.Vitals.Hunger = pet.HungerFromElapsed(working.LastFed, s.Now(), working.BaseHunger)
	err := fn(&working)

	s.mu.Lock()
	if err == nil {
		working.Vitals = pet.ClampVitals(working.Vitals)
		m.pet = working
	}
	snapshot := m.pet
	m.state = StateIdle
	s.mu.Unlock()

	if err != nil {
		return pet.Pet{}, err
	}
	s.persist(ctx, petID, snapshot)
	return snapshot, nil
}

// persist saves best-effort. Failures are logged and flagged, never
// propagated: the in-memory state already committed.
func (s *Store) persist(ctx context.Context, petID string, snapshot pet.Pet) {
	err := s.Repo.Save(ctx, snapshot)

	s.mu.Lock()
	if m, ok := s.monitors[petID]; ok {
		m.syncPending = err != nil
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("pet %s: save failed, sync pending: %v", petID, err)
	}
}

// StartMonitoring schedules the periodic ticks for a pet. Calling it again
// for the same id first cancels the existing timers, so duplicates never
// accumulate.
func (s *Store) StartMonitoring(petID string) {
	s.mu.Lock()
	m, ok := s.monitors[petID]
	if !ok {
		s.mu.Unlock()
		return
	}
	cancelAll(m.cancels)
	m.cancels = []sched.CancelFunc{
		s.Scheduler.Schedule(s.Cfg.HungerInterval, func() { s.safeTick("hunger", petID, s.tickHunger) }),
		s.Scheduler.Schedule(s.Cfg.HealthInterval, func() { s.safeTick("health", petID, s.tickHealth) }),
		s.Scheduler.Schedule(s.Cfg.NeedInterval, func() { s.safeTick("needs", petID, s.tickNeeds) }),
	}
	s.mu.Unlock()
}

func (s *Store) StopMonitoring(petID string) {
	s.mu.Lock()
	m, ok := s.monitors[petID]
	if ok {
		cancelAll(m.cancels)
		m.cancels = nil
	}
	s.mu.Unlock()
}

// Dispose stops every monitor and drops all in-memory state.
func (s *Store) Dispose() {
	s.mu.Lock()
	for _, m := range s.monitors {
		cancelAll(m.cancels)
		m.cancels = nil
	}
	s.monitors = map[string]*monitor{}
	s.owners = map[string]string{}
	s.mu.Unlock()
}

func cancelAll(cancels []sched.CancelFunc) {
	for _, cancel := range cancels {
		cancel()
	}
}

// safeTick isolates a tick failure so the next scheduled tick still fires.
func (s *Store) safeTick(name, petID string, fn func(petID string)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pet %s: %s tick panic: %v", petID, name, r)
		}
	}()
	fn(petID)
}

func (s *Store) tickHunger(petID string) {
	s.mu.Lock()
	if m, ok := s.monitors[petID]; ok && m.state == StateIdle {
		s.refreshHungerLocked(m)
	}
	s.mu.Unlock()
}

// tickHealth applies the hunger penalties to health and happiness and
// samples a trend point. Runs at the slow cadence so the step penalties are
// not compounded by faster ticks. Busy pets are skipped so the tick never
// clashes with an action's write-back; the next interval catches up.
func (s *Store) tickHealth(petID string) {
	s.mu.Lock()
	m, ok := s.monitors[petID]
	if !ok || m.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.refreshHungerLocked(m)
	v := &m.pet.Vitals
	v.Health = pet.HealthImpactOfHunger(v.Hunger, v.Health)
	v.Happiness = pet.HappinessImpactOfHunger(v.Hunger, v.Happiness)
	m.pet.UpdatedAt = s.Now()

	m.trends = append(m.trends, pet.HealthTrend{SampledAt: s.Now(), Vitals: *v})
	if len(m.trends) > pet.TrendBufferCap {
		m.trends = m.trends[len(m.trends)-pet.TrendBufferCap:]
	}
	snapshot := m.pet
	s.mu.Unlock()

	s.persist(context.Background(), petID, snapshot)
}

// tickNeeds evaluates alert conditions, stores the ones that survive
// dedup, and runs auto-care when configured.
func (s *Store) tickNeeds(petID string) {
	s.mu.Lock()
	m, ok := s.monitors[petID]
	if !ok || m.state != StateIdle {
		s.mu.Unlock()
		return
	}
	now := s.Now()
	s.refreshHungerLocked(m)

	sinceInteraction := now.Sub(m.pet.LastInteraction)
	conditions := pet.EvaluateAlertConditions(m.pet.Vitals, sinceInteraction)

	fired := make([]pet.HealthAlert, 0, len(conditions))
	for _, cond := range conditions {
		if pet.Suppressed(m.alerts, cond, now) {
			continue
		}
		alert := pet.HealthAlert{
			ID:             s.NewID(),
			Type:           cond.Type,
			Title:          cond.Title,
			Message:        cond.Message,
			Timestamp:      now,
			ActionRequired: cond.ActionRequired,
		}
		m.alerts = append(m.alerts, alert)
		fired = append(fired, alert)
	}
	if len(m.alerts) > pet.AlertBufferCap {
		m.alerts = m.alerts[len(m.alerts)-pet.AlertBufferCap:]
	}

	s.autoCareLocked(m, now)
	s.mu.Unlock()

	if s.OnAlert != nil {
		for _, alert := range fired {
			s.OnAlert(petID, alert)
		}
	}
}

// autoCareLocked feeds or plays automatically when thresholds are crossed,
// but only while the pet is idle; explicit user actions always win.
func (s *Store) autoCareLocked(m *monitor, now time.Time) {
	if !m.autoCare.Enabled || m.state != StateIdle {
		return
	}
	if m.pet.Vitals.Hunger >= m.autoCare.FeedThreshold {
		if food, ok := pet.FoodByID(pet.DefaultFoodID); ok {
			// Cooldown rejections are expected while the threshold stays
			// crossed between feeds.
			_ = pet.Feed(&m.pet, food, now)
		}
		return
	}
	if m.pet.Vitals.Happiness <= m.autoCare.PlayThreshold {
		if toy, ok := pet.ToyByID(pet.DefaultToyID); ok {
			_ = pet.Play(&m.pet, toy, now)
		}
	}
}

func (s *Store) Alerts(petID string, unacknowledgedOnly bool) ([]pet.HealthAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[petID]
	if !ok {
		return nil, ErrNoPet
	}
	out := make([]pet.HealthAlert, 0, len(m.alerts))
	for _, a := range m.alerts {
		if unacknowledgedOnly && a.Acknowledged {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) Acknowledge(petID, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[petID]
	if !ok {
		return ErrNoPet
	}
	for i := range m.alerts {
		if m.alerts[i].ID == alertID {
			m.alerts[i].Acknowledged = true
			return nil
		}
	}
	return ports.ErrNotFound
}

func (s *Store) Trends(petID string, window time.Duration) ([]pet.HealthTrend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[petID]
	if !ok {
		return nil, ErrNoPet
	}
	cutoff := s.Now().Add(-window)
	out := make([]pet.HealthTrend, 0, len(m.trends))
	for _, tr := range m.trends {
		if !tr.SampledAt.Before(cutoff) {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (s *Store) SetAutoCare(petID string, ac AutoCare) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[petID]
	if !ok {
		return ErrNoPet
	}
	m.autoCare = ac
	return nil
}

func (s *Store) Status(petID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[petID]
	if !ok {
		return Status{}, ErrNoPet
	}
	return Status{State: m.state, SyncPending: m.syncPending, AutoCare: m.autoCare}, nil
}
