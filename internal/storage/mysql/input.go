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

func (s *Storage) GetProcesses(ctx context.Context, orgID string) ([]storage.Process, error) {
	const op = "storage.mysql.GetProcesses"

	stmt := `SELECT data FROM processes WHERE org_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, stmt, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	processes := make([]storage.Process, 0)

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}

		var p storage.Process
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%s: decode process: %w", op, err)
		}
		processes = append(processes, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}

	return processes, nil
}

func (s *Storage) GetGroups(ctx context.Context, orgID string) ([]storage.Group, error) {
	const op = "storage.mysql.GetGroups"

	stmt := `SELECT id, name FROM process_groups WHERE org_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, stmt, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	groups := make([]storage.Group, 0)

	for rows.Next() {
		var g storage.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}

	return groups, nil
}

func (s *Storage) GetGlobalDefaults(ctx context.Context, orgID string) (*storage.GlobalDefaults, error) {
	const op = "storage.mysql.GetGlobalDefaults"

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM global_defaults WHERE org_id = ?`, orgID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: org_id='%s': %w", op, orgID, storage.ErrInputNotFound)
		}
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}

	d := &storage.GlobalDefaults{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("%s: decode defaults: %w", op, err)
	}

	return d, nil
}

func (s *Storage) SaveGlobalDefaults(ctx context.Context, orgID string, d storage.GlobalDefaults) error {
	const op = "storage.mysql.SaveGlobalDefaults"

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%s: encode defaults: %w", op, err)
	}

	stmt := `INSERT INTO global_defaults (org_id, data, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = VALUES(updated_at)`

	if _, err := s.db.ExecContext(ctx, stmt, orgID, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return nil
}

func (s *Storage) SaveProcess(ctx context.Context, orgID string, p storage.Process) error {
	const op = "storage.mysql.SaveProcess"

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: encode process: %w", op, err)
	}

	stmt := `INSERT INTO processes (org_id, id, name, group_id, selected, data, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), group_id = VALUES(group_id), selected = VALUES(selected),
		data = VALUES(data), updated_at = VALUES(updated_at)`

	_, err = s.db.ExecContext(ctx, stmt, orgID, p.ID, p.Name, p.Group, p.Selected, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return nil
}

func (s *Storage) SaveGroup(ctx context.Context, orgID string, g storage.Group) error {
	const op = "storage.mysql.SaveGroup"

	stmt := `INSERT INTO process_groups (org_id, id, name) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name)`

	if _, err := s.db.ExecContext(ctx, stmt, orgID, g.ID, g.Name); err != nil {
		return fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return nil
}
