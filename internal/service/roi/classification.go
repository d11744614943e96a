package roi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"roi-engine/internal/constants"
	"roi-engine/internal/storage"
)

var ErrInvalidClassification = errors.New("invalid cost classification")

// Classification is a validated cost classification. The zero value is
// invalid; the only way to obtain a valid one is NewClassification.
type Classification struct {
	orgID string
	hard  map[string]bool
	soft  map[string]bool
	valid bool
}

// Split is a savings value routed into hard and soft dollars.
type Split struct {
	Hard float64 `json:"hard"`
	Soft float64 `json:"soft"`
}

func (s Split) Total() float64 {
	return s.Hard + s.Soft
}

// NewClassification validates a stored classification. Both lists must be
// present (empty is allowed) and must not share a key.
func NewClassification(c *storage.CostClassification) (Classification, error) {
	problems := ClassificationProblems(c)
	if len(problems) > 0 {
		return Classification{}, fmt.Errorf("%w: %s", ErrInvalidClassification, strings.Join(problems, "; "))
	}

	cls := Classification{
		orgID: c.OrgID,
		hard:  make(map[string]bool, len(c.HardCosts)),
		soft:  make(map[string]bool, len(c.SoftCosts)),
		valid: true,
	}
	for _, k := range c.HardCosts {
		cls.hard[k] = true
	}
	for _, k := range c.SoftCosts {
		cls.soft[k] = true
	}

	return cls, nil
}

// ClassificationProblems lists every reason c cannot be used. Empty means valid.
func ClassificationProblems(c *storage.CostClassification) []string {
	if c == nil {
		return []string{"classification is missing"}
	}

	var problems []string
	if c.HardCosts == nil {
		problems = append(problems, "hard_costs is not an array")
	}
	if c.SoftCosts == nil {
		problems = append(problems, "soft_costs is not an array")
	}

	hard := make(map[string]bool, len(c.HardCosts))
	for _, k := range c.HardCosts {
		hard[k] = true
	}
	var overlap []string
	for _, k := range c.SoftCosts {
		if hard[k] {
			overlap = append(overlap, k)
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		problems = append(problems, fmt.Sprintf("keys classified as both hard and soft: %s", strings.Join(overlap, ", ")))
	}

	return problems
}

// UnknownKeys returns classified keys that are not known cost attributes.
func UnknownKeys(c *storage.CostClassification) []string {
	if c == nil {
		return nil
	}
	var unknown []string
	for _, list := range [][]string{c.HardCosts, c.SoftCosts} {
		for _, k := range list {
			if !constants.KnownCostKeys[k] {
				unknown = append(unknown, k)
			}
		}
	}
	return unknown
}

func (c Classification) Valid() bool {
	return c.valid
}

func (c Classification) OrgID() string {
	return c.orgID
}

func (c Classification) IsHard(key string) bool {
	return c.hard[key]
}

func (c Classification) IsSoft(key string) bool {
	return c.soft[key]
}

// Split routes value by key. Keys in neither list count as soft dollars.
func (c Classification) Split(key string, value float64) Split {
	if c.hard[key] {
		return Split{Hard: value}
	}
	return Split{Soft: value}
}

// splitSLA classifies SLA value by slaPenalties, falling back to customerImpactCosts.
func (c Classification) splitSLA(value float64) Split {
	switch {
	case c.hard[constants.SLAPenalties]:
		return Split{Hard: value}
	case c.soft[constants.SLAPenalties]:
		return Split{Soft: value}
	default:
		return c.Split(constants.CustomerImpactCosts, value)
	}
}

// splitPromptPayment counts the benefit as hard unless the organization
// declared no hard costs at all.
func (c Classification) splitPromptPayment(value float64) Split {
	if len(c.hard) == 0 {
		return Split{Soft: value}
	}
	return Split{Hard: value}
}
