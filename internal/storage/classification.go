package storage

import "time"

// CostClassification routes each cost key into hard or soft dollars for one
// organization. A nil slice means the list was never loaded.
type CostClassification struct {
	OrgID     string    `json:"org_id" yaml:"org_id"`
	HardCosts []string  `json:"hard_costs" yaml:"hard_costs"`
	SoftCosts []string  `json:"soft_costs" yaml:"soft_costs"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}
