package storage

import "errors"

var (
	ErrClassificationNotFound = errors.New("cost classification not found")
	ErrInputNotFound          = errors.New("input data not found")
	ErrProcessNotFound        = errors.New("process not found")
	ErrInvalidRecord          = errors.New("record rejected by store")
)

type Group struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// InputData is everything the engine needs for one organization.
type InputData struct {
	Processes      []Process      `json:"processes" yaml:"processes"`
	Groups         []Group        `json:"groups" yaml:"groups"`
	GlobalDefaults GlobalDefaults `json:"global_defaults" yaml:"global_defaults"`
}

// Bundle is the offline file format read by the CLI.
type Bundle struct {
	OrgID              string              `json:"org_id" yaml:"org_id"`
	TimeHorizonMonths  int                 `json:"time_horizon_months" yaml:"time_horizon_months"`
	Input              InputData           `json:"input" yaml:"input"`
	CostClassification *CostClassification `json:"cost_classification" yaml:"cost_classification"`
}
