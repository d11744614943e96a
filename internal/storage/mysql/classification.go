package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roi-engine/internal/storage"
)

func (s *Storage) GetCostClassification(ctx context.Context, orgID string) (*storage.CostClassification, error) {
	const op = "storage.mysql.GetCostClassification"

	query := `SELECT org_id, hard_costs, soft_costs, updated_at FROM cost_classifications WHERE org_id = ?`

	c := &storage.CostClassification{}

	var hardJSON, softJSON []byte
	err := s.db.QueryRowContext(ctx, query, orgID).Scan(&c.OrgID, &hardJSON, &softJSON, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: org_id='%s': %w", op, orgID, storage.ErrClassificationNotFound)
		}
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}

	// A JSON null leaves the slice nil, which the guard rejects.
	if err := json.Unmarshal(hardJSON, &c.HardCosts); err != nil {
		return nil, fmt.Errorf("%s: decode hard_costs: %w", op, err)
	}
	if err := json.Unmarshal(softJSON, &c.SoftCosts); err != nil {
		return nil, fmt.Errorf("%s: decode soft_costs: %w", op, err)
	}

	return c, nil
}

func (s *Storage) SaveCostClassification(ctx context.Context, c storage.CostClassification) error {
	const op = "storage.mysql.SaveCostClassification"

	hardJSON, err := json.Marshal(c.HardCosts)
	if err != nil {
		return fmt.Errorf("%s: encode hard_costs: %w", op, err)
	}
	softJSON, err := json.Marshal(c.SoftCosts)
	if err != nil {
		return fmt.Errorf("%s: encode soft_costs: %w", op, err)
	}

	stmt := `INSERT INTO cost_classifications (org_id, hard_costs, soft_costs, updated_at) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE hard_costs = VALUES(hard_costs), soft_costs = VALUES(soft_costs), updated_at = VALUES(updated_at)`

	_, err = s.db.ExecContext(ctx, stmt, c.OrgID, hardJSON, softJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return nil
}
