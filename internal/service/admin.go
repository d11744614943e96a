package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

var ErrValidation = errors.New("validation failed")

type AdminStorage interface {
	GetCostClassification(ctx context.Context, orgID string) (*storage.CostClassification, error)
	SaveCostClassification(ctx context.Context, c storage.CostClassification) error
	SaveGlobalDefaults(ctx context.Context, orgID string, d storage.GlobalDefaults) error
	SaveProcess(ctx context.Context, orgID string, p storage.Process) error
	SaveGroup(ctx context.Context, orgID string, g storage.Group) error
}

// Invalidator drops cached results of an organization.
type Invalidator interface {
	Invalidate(orgID string)
}

// AdminService validates and persists the data calculations read.
type AdminService struct {
	log     *slog.Logger
	storage AdminStorage
	cache   Invalidator
}

func NewAdminService(log *slog.Logger, storage AdminStorage, cache Invalidator) *AdminService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &AdminService{log: log, storage: storage, cache: cache}
}

func (s *AdminService) GetClassification(ctx context.Context, orgID string) (*storage.CostClassification, error) {
	const op = "service.AdminService.GetClassification"

	c, err := s.storage.GetCostClassification(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// SaveClassification stores a classification only if the guard would accept it.
func (s *AdminService) SaveClassification(ctx context.Context, c storage.CostClassification) error {
	const op = "service.AdminService.SaveClassification"

	if strings.TrimSpace(c.OrgID) == "" {
		return fmt.Errorf("%s: %w: org id is required", op, ErrValidation)
	}
	if _, err := roi.NewClassification(&c); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrValidation, err)
	}
	if unknown := roi.UnknownKeys(&c); len(unknown) > 0 {
		s.log.Warn("saving classification with unknown cost keys",
			slog.String("op", op),
			slog.String("org_id", c.OrgID),
			slog.Any("keys", unknown),
		)
	}

	if err := s.storage.SaveCostClassification(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(c.OrgID)
	return nil
}

func (s *AdminService) SaveGlobalDefaults(ctx context.Context, orgID string, d storage.GlobalDefaults) error {
	const op = "service.AdminService.SaveGlobalDefaults"

	if strings.TrimSpace(orgID) == "" {
		return fmt.Errorf("%s: %w: org id is required", op, ErrValidation)
	}
	if d.BusinessHoursStart < 0 || d.BusinessHoursEnd > 24 || d.BusinessHoursStart > d.BusinessHoursEnd {
		return fmt.Errorf("%s: %w: business hours %d-%d", op, ErrValidation, d.BusinessHoursStart, d.BusinessHoursEnd)
	}

	if err := s.storage.SaveGlobalDefaults(ctx, orgID, d); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(orgID)
	return nil
}

// SaveProcess rejects processes the input adapter cannot normalize.
func (s *AdminService) SaveProcess(ctx context.Context, orgID string, p storage.Process) error {
	const op = "service.AdminService.SaveProcess"

	if strings.TrimSpace(orgID) == "" || strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%s: %w: org id and process id are required", op, ErrValidation)
	}
	if c := p.Implementation.AutomationCoverage; c != nil && (*c < 0 || *c > 100) {
		return fmt.Errorf("%s: %w: automation coverage %.2f out of range", op, ErrValidation, *c)
	}
	if _, err := roi.Normalize(p, roi.NormalizeDefaults(storage.GlobalDefaults{})); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrValidation, err)
	}

	if err := s.storage.SaveProcess(ctx, orgID, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(orgID)
	return nil
}

func (s *AdminService) SaveGroup(ctx context.Context, orgID string, g storage.Group) error {
	const op = "service.AdminService.SaveGroup"

	if strings.TrimSpace(orgID) == "" || strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%s: %w: org id and group id are required", op, ErrValidation)
	}

	if err := s.storage.SaveGroup(ctx, orgID, g); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(orgID)
	return nil
}

func (s *AdminService) invalidate(orgID string) {
	if s.cache != nil {
		s.cache.Invalidate(orgID)
	}
}
