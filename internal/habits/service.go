package habits

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
)

type habitsRepo interface {
	Find(ctx context.Context, id string) (*Habit, error)
	FindAllByOwner(ctx context.Context, ownerID int) ([]*Habit, error)
	Save(ctx context.Context, h *Habit) error
	Update(ctx context.Context, id string, mutate func(h *Habit) error) (*Habit, error)
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type Service struct {
	repo           habitsRepo
	cache          *OwnerCache
	clock          datekey.Clock
	metricsManager *metrics.Manager
	newID          func() string
}

func NewService(
	repo habitsRepo,
	cache *OwnerCache,
	clock datekey.Clock,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		clock:          clock,
		metricsManager: metricsManager,
		newID: func() string {
			return uuid.NewString()
		},
	}
}

// repoErr keeps domain errors as they are and marks everything else
// as a store failure.
func repoErr(op string, err error) error {
	if errors.Is(err, ErrHabitNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrValidation) {
		return err
	}
	return storeErr(op, err)
}

// validID filters ids that can never exist, so they end as not found
// instead of a store error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) today() datekey.DateKey {
	return s.clock.Today()
}

// List returns the owner's habits, newest first, with streaks as of today.
func (s *Service) List(ctx context.Context, ownerID int) (_ []*Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	habits, ok := s.cache.Get(ownerID)
	if !ok {
		generation := s.cache.Generation(ownerID)
		habits, err = s.repo.FindAllByOwner(ctx, ownerID)
		if err != nil {
			return nil, repoErr("find habits by owner", err)
		}
		// a mutation committed during the read leaves the cache empty
		s.cache.SetIfGeneration(ownerID, generation, habits)
	}
	span.SetAttributes(attribute.Bool("cached", ok))

	today := s.today()
	for _, h := range habits {
		h.Streak = ComputeStreak(h.Completions, today)
	}
	return habits, nil
}

func (s *Service) Get(ctx context.Context, ownerID int, id string) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !validID(id) {
		return nil, ErrHabitNotFound
	}

	h, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, repoErr("find habit", err)
	}
	if h.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	h.Streak = ComputeStreak(h.Completions, s.today())
	return h, nil
}

func (s *Service) Create(ctx context.Context, ownerID int, in HabitInput) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	h := &Habit{
		ID:            s.newID(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Category:      in.Category,
		Icon:          in.Icon,
		ScheduledDays: in.ScheduledDays,
		ScheduledTime: in.ScheduledTime,
		Color:         in.Color,
		Streak:        0,
		Completions:   Completions{},
	}
	if err := s.repo.Save(ctx, h); err != nil {
		return nil, repoErr("save habit", err)
	}
	s.cache.Invalidate(ownerID)
	s.metricsManager.CounterHabitsCreated.Inc()

	log.Debugf("habit [%s] created for user %d", h.ID, ownerID)
	return h, nil
}

func (s *Service) Update(ctx context.Context, ownerID int, id string, patch HabitPatch) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !validID(id) {
		return nil, ErrHabitNotFound
	}

	today := s.today()
	h, err := s.repo.Update(ctx, id, func(h *Habit) error {
		if h.OwnerID != ownerID {
			return ErrForbidden
		}
		if err := patch.Apply(h); err != nil {
			return err
		}
		h.Streak = ComputeStreak(h.Completions, today)
		return nil
	})
	if err != nil {
		return nil, repoErr("update habit", err)
	}
	s.cache.Invalidate(ownerID)
	return h, nil
}

// Toggle flips the completion of date (today when empty) and stores the
// recomputed streak together with the map.
func (s *Service) Toggle(ctx context.Context, ownerID int, id string, date string) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := s.today()
	day := today
	if date != "" {
		day, err = datekey.Parse(date)
		if err != nil {
			return nil, &ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
		}
	}
	span.SetAttributes(attribute.String("date", day.String()))

	if !validID(id) {
		return nil, ErrHabitNotFound
	}

	var done bool
	h, err := s.repo.Update(ctx, id, func(h *Habit) error {
		if h.OwnerID != ownerID {
			return ErrForbidden
		}
		if h.Completions == nil {
			h.Completions = Completions{}
		}
		done = h.Completions.Toggle(day)
		h.Streak = ComputeStreak(h.Completions, today)
		return nil
	})
	if err != nil {
		return nil, repoErr("toggle habit", err)
	}
	s.cache.Invalidate(ownerID)

	s.metricsManager.CounterToggles.WithLabelValues(strconv.FormatBool(done)).Inc()
	s.metricsManager.HistogramToggleStreak.Observe(float64(h.Streak))
	log.Tracef("habit [%s] toggled on %s: %t, streak %d", id, day, done, h.Streak)

	return h, nil
}

func (s *Service) Delete(ctx context.Context, ownerID int, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !validID(id) {
		return ErrHabitNotFound
	}

	h, err := s.repo.Find(ctx, id)
	if err != nil {
		return repoErr("find habit", err)
	}
	if h.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr("delete habit", err)
	}
	s.cache.Invalidate(ownerID)
	s.metricsManager.CounterHabitsDeleted.Inc()
	return nil
}

func (s *Service) WeeklyProgress(ctx context.Context, ownerID int) ([]DayProgress, error) {
	habits, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return WeeklyProgress(habits, s.today()), nil
}

func (s *Service) MonthlyProgress(ctx context.Context, ownerID int) ([]DayProgress, error) {
	habits, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return MonthlyProgress(habits, s.today()), nil
}

func (s *Service) OverallCompletion(ctx context.Context, ownerID int) (int, error) {
	habits, err := s.List(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return OverallCompletion(habits, s.today()), nil
}

func (s *Service) Stats(ctx context.Context, ownerID int) (Stats, error) {
	habits, err := s.List(ctx, ownerID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(habits, s.today()), nil
}

func (s *Service) Rewards(ctx context.Context, ownerID int) ([]Reward, error) {
	habits, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ResolveRewards(habits), nil
}

// RecomputeStreaks rewrites the stored streak of every habit whose value
// drifted from its completions, and returns how many were changed.
func (s *Service) RecomputeStreaks(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.habits.recomputestreaks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return 0, repoErr("list habit ids", err)
	}

	today := s.today()
	changed := 0
	for _, id := range ids {
		var drifted bool
		h, err := s.repo.Update(ctx, id, func(h *Habit) error {
			streak := ComputeStreak(h.Completions, today)
			drifted = streak != h.Streak
			h.Streak = streak
			return nil
		})
		if errors.Is(err, ErrHabitNotFound) {
			// deleted in the meantime
			continue
		}
		if err != nil {
			return changed, repoErr("recompute streak", err)
		}
		if drifted {
			changed++
			s.cache.Invalidate(h.OwnerID)
		}
	}
	span.SetAttributes(attribute.Int("changed", changed))
	return changed, nil
}
