package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"roi-engine/internal/guard"
	"roi-engine/internal/scheduler"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/service/scoring"
	"roi-engine/internal/storage"
)

type ROIStorage interface {
	GetCostClassification(ctx context.Context, orgID string) (*storage.CostClassification, error)
	GetProcesses(ctx context.Context, orgID string) ([]storage.Process, error)
	GetGroups(ctx context.Context, orgID string) ([]storage.Group, error)
	GetGlobalDefaults(ctx context.Context, orgID string) (*storage.GlobalDefaults, error)
}

type Options struct {
	TimeHorizonMonths int
	DebounceInterval  time.Duration
	Clock             func() time.Time
}

// ROIService loads an organization's data, gates it and runs the engine.
type ROIService struct {
	log      *slog.Logger
	storage  ROIStorage
	guard    *guard.Guard
	debounce *scheduler.Debouncer
	calc     *roi.Calculator
	horizon  int

	mu sync.RWMutex
	// cache holds the last result per organization and slot. A slot is the
	// input source plus the resolved horizon.
	cache map[string]map[string]roi.ROIResults
}

const (
	sourceStored = "stored"
	sourceInput  = "input"
)

func NewROIService(log *slog.Logger, storage ROIStorage, opts Options) *ROIService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var schedOpts []scheduler.Option
	if opts.Clock != nil {
		schedOpts = append(schedOpts, scheduler.WithClock(opts.Clock))
	}

	return &ROIService{
		log:      log,
		storage:  storage,
		guard:    guard.New(log),
		debounce: scheduler.New(opts.DebounceInterval, schedOpts...),
		calc:     roi.NewCalculator(log),
		horizon:  roi.ClampTimeHorizon(opts.TimeHorizonMonths),
		cache:    make(map[string]map[string]roi.ROIResults),
	}
}

// Outcome is one calculation request's answer. Fresh is false when the
// request was debounced and Results came from the cache; Empty is true when
// it was debounced and nothing was cached yet.
type Outcome struct {
	Results roi.ROIResults
	Fresh   bool
	Empty   bool
}

// loaded is the snapshot one calculation works on.
type loaded struct {
	classification       *storage.CostClassification
	classificationLoaded bool
	data                 storage.InputData
	dataReady            bool
}

// Calculate recalculates the stored portfolio of an organization. Requests
// arriving while a run for the same horizon is in flight, or right after
// one, are dropped.
func (s *ROIService) Calculate(ctx context.Context, orgID string, horizon int) (Outcome, error) {
	horizon = s.resolveHorizon(horizon)
	return s.debounced(orgID, slot(sourceStored, horizon), func() (roi.ROIResults, error) {
		snap, err := s.load(ctx, orgID, nil)
		if err != nil {
			return roi.ROIResults{}, err
		}
		return s.run(orgID, horizon, snap)
	})
}

// CalculateInput runs the engine on caller-supplied input. The classification
// still comes from the store. Its results are debounced and cached apart from
// the stored portfolio's.
func (s *ROIService) CalculateInput(ctx context.Context, orgID string, data storage.InputData, horizon int) (Outcome, error) {
	horizon = s.resolveHorizon(horizon)
	return s.debounced(orgID, slot(sourceInput, horizon), func() (roi.ROIResults, error) {
		snap, err := s.load(ctx, orgID, &data)
		if err != nil {
			return roi.ROIResults{}, err
		}
		return s.run(orgID, horizon, snap)
	})
}

// Prioritize calculates the stored portfolio and scores every selected
// process. It is not debounced.
func (s *ROIService) Prioritize(ctx context.Context, orgID string) (roi.ROIResults, []scoring.Prioritization, error) {
	const op = "service.ROIService.Prioritize"

	snap, err := s.load(ctx, orgID, nil)
	if err != nil {
		return roi.ROIResults{}, nil, err
	}
	res, err := s.run(orgID, s.horizon, snap)
	if err != nil {
		return roi.ROIResults{}, nil, err
	}

	prio, err := scoring.ForPortfolio(snap.data, res)
	if err != nil {
		return roi.ROIResults{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, prio, nil
}

// Cached returns the last stored-portfolio result of an organization for the
// horizon, blocked results included.
func (s *ROIService) Cached(orgID string, horizon int) (roi.ROIResults, bool) {
	return s.cached(orgID, slot(sourceStored, s.resolveHorizon(horizon)))
}

func (s *ROIService) cached(orgID, key string) (roi.ROIResults, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.cache[orgID][key]
	return res, ok
}

func (s *ROIService) store(orgID, key string, res roi.ROIResults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache[orgID] == nil {
		s.cache[orgID] = make(map[string]roi.ROIResults)
	}
	s.cache[orgID][key] = res
}

// Invalidate drops every cached result after the organization's data changed.
func (s *ROIService) Invalidate(orgID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, orgID)
}

func (s *ROIService) resolveHorizon(horizon int) int {
	if horizon == 0 {
		return s.horizon
	}
	return roi.ClampTimeHorizon(horizon)
}

func slot(source string, horizon int) string {
	return fmt.Sprintf("%s:%d", source, horizon)
}

// debounced runs fn through the gate keyed by organization and slot, and
// caches what it returns. Blocked results are cached too, so a dropped
// request still reports why the organization cannot be calculated.
func (s *ROIService) debounced(orgID, key string, fn func() (roi.ROIResults, error)) (Outcome, error) {
	const op = "service.ROIService.debounced"

	var res roi.ROIResults
	result, err := s.debounce.Run(orgID+"|"+key, func() error {
		var err error
		res, err = fn()
		if err != nil {
			return err
		}
		s.store(orgID, key, res)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if result.Outcome == scheduler.Skipped {
		s.log.Debug("calculation skipped",
			slog.String("op", op),
			slog.String("org_id", orgID),
			slog.String("slot", key),
			slog.String("reason", string(result.Reason)),
		)
		if cached, ok := s.cached(orgID, key); ok {
			return Outcome{Results: cached}, nil
		}
		return Outcome{Empty: true}, nil
	}

	return Outcome{Results: res, Fresh: true}, nil
}

// load reads the classification and, unless input is supplied, the stored
// portfolio concurrently. Missing records become guard conditions.
func (s *ROIService) load(ctx context.Context, orgID string, input *storage.InputData) (loaded, error) {
	const op = "service.ROIService.load"

	var (
		snap      loaded
		processes []storage.Process
		groups    []storage.Group
		defaults  *storage.GlobalDefaults
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.storage.GetCostClassification(gCtx, orgID)
		if errors.Is(err, storage.ErrClassificationNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("classification: %w", err)
		}
		snap.classification = c
		snap.classificationLoaded = true
		return nil
	})

	if input == nil {
		g.Go(func() error {
			var err error
			processes, err = s.storage.GetProcesses(gCtx, orgID)
			if err != nil {
				return fmt.Errorf("processes: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			groups, err = s.storage.GetGroups(gCtx, orgID)
			if err != nil {
				return fmt.Errorf("groups: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			defaults, err = s.storage.GetGlobalDefaults(gCtx, orgID)
			if errors.Is(err, storage.ErrInputNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("global defaults: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return loaded{}, fmt.Errorf("%s: %w", op, err)
	}

	if input != nil {
		snap.data = *input
		snap.dataReady = true
		return snap, nil
	}

	if defaults != nil {
		snap.data = storage.InputData{Processes: processes, Groups: groups, GlobalDefaults: *defaults}
		snap.dataReady = true
	}
	return snap, nil
}

// run gates the snapshot and calculates it. A blocked snapshot is a result,
// not an error.
func (s *ROIService) run(orgID string, horizon int, snap loaded) (roi.ROIResults, error) {
	const op = "service.ROIService.run"

	cls, decision := s.guard.Check(guard.Request{
		OrgID:                orgID,
		ClassificationLoaded: snap.classificationLoaded,
		Classification:       snap.classification,
		DataReady:            snap.dataReady,
	})
	if !decision.Allow {
		return roi.BlockedResults(orgID, decision.Blockers), nil
	}

	res, err := s.calc.ComputePortfolio(snap.data, cls, roi.PortfolioOptions{OrgID: orgID, TimeHorizonMonths: horizon})
	if err != nil {
		return roi.ROIResults{}, fmt.Errorf("%s: %w", op, err)
	}
	res.RunID = uuid.NewString()

	s.log.Info("portfolio calculated",
		slog.String("op", op),
		slog.String("org_id", orgID),
		slog.String("run_id", res.RunID),
		slog.Int("selected", res.SelectedProcesses),
	)

	return res, nil
}
