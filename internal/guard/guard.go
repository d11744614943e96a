// Package guard is the single gate every ROI calculation passes through.
package guard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

var ErrBlocked = errors.New("calculation blocked")

// Decision is the outcome of a gate check.
type Decision struct {
	Allow    bool
	Blockers []string
}

// Err is nil when the decision allows the calculation, otherwise it wraps
// ErrBlocked with the blockers.
func (d Decision) Err() error {
	if d.Allow {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrBlocked, strings.Join(d.Blockers, "; "))
}

// Request describes the calculation context being checked.
type Request struct {
	OrgID                string
	ClassificationLoaded bool
	Classification       *storage.CostClassification
	DataReady            bool
}

type Guard struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Guard {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Guard{log: log}
}

// Check validates the calculation context. It never panics and never falls
// back to a default classification: on any failure the returned
// Classification is the invalid zero value.
func (g *Guard) Check(req Request) (roi.Classification, Decision) {
	const op = "guard.Check"

	var blockers []string
	if strings.TrimSpace(req.OrgID) == "" {
		blockers = append(blockers, "organization id is missing")
	}
	if !req.ClassificationLoaded {
		blockers = append(blockers, "cost classification is not loaded")
	}
	for _, p := range roi.ClassificationProblems(req.Classification) {
		blockers = append(blockers, "cost classification: "+p)
	}
	if c := req.Classification; c != nil && c.OrgID != "" && req.OrgID != "" && c.OrgID != req.OrgID {
		blockers = append(blockers, fmt.Sprintf("cost classification belongs to organization %s", c.OrgID))
	}
	if !req.DataReady {
		blockers = append(blockers, "input data is not ready")
	}

	if len(blockers) > 0 {
		g.log.Warn("calculation blocked",
			slog.String("op", op),
			slog.String("org_id", req.OrgID),
			slog.Any("blockers", blockers),
		)
		return roi.Classification{}, Decision{Blockers: blockers}
	}

	cls, err := roi.NewClassification(req.Classification)
	if err != nil {
		blockers = []string{err.Error()}
		g.log.Warn("calculation blocked",
			slog.String("op", op),
			slog.String("org_id", req.OrgID),
			slog.Any("blockers", blockers),
		)
		return roi.Classification{}, Decision{Blockers: blockers}
	}

	if unknown := roi.UnknownKeys(req.Classification); len(unknown) > 0 {
		g.log.Info("classification contains unknown cost keys",
			slog.String("op", op),
			slog.String("org_id", req.OrgID),
			slog.Any("keys", unknown),
		)
	}

	return cls, Decision{Allow: true}
}
