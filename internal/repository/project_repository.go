package repository

import (
	"database/sql"
	"fmt"

	"github.com/loopital/ledger-backend/internal/apperrors"
	"github.com/loopital/ledger-backend/internal/model"
)

// ProjectRepository provides data access methods for the project snapshot
// table. Projects are replaced wholesale on every refresh; reads serve the
// derived portfolio and withdrawal views.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository with the provided database connection.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetProjects retrieves all projects from the current snapshot.
// Returns an empty slice when the snapshot holds no projects.
func (r *ProjectRepository) GetProjects() ([]model.Project, error) {
	query := `
          SELECT id, alt_id, name, raised_amount, target_amount, amount_released,
                 status, current_phase, roi, duration_months
          FROM project
      `
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query project table: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project table: %w", err)
	}

	return projects, nil
}

// GetProjectOnRef retrieves a single project by its primary id or its
// alternate UUID identifier. Returns ErrProjectNotFound when neither matches.
func (r *ProjectRepository) GetProjectOnRef(ref string) (model.Project, error) {
	query := `
          SELECT id, alt_id, name, raised_amount, target_amount, amount_released,
                 status, current_phase, roi, duration_months
          FROM project
          WHERE id = ? OR alt_id = ?
      `
	row := r.db.QueryRow(query, ref, ref)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return model.Project{}, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// ReplaceAll swaps the project snapshot for a fresh one inside the caller's
// transaction.
func (r *ProjectRepository) ReplaceAll(tx *sql.Tx, projects []model.Project) error {
	if _, err := tx.Exec("DELETE FROM project"); err != nil {
		return fmt.Errorf("failed to clear project table: %w", err)
	}

	query := `
          INSERT INTO project (id, alt_id, name, raised_amount, target_amount,
                               amount_released, status, current_phase, roi, duration_months)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
      `
	for _, p := range projects {
		released := sql.NullFloat64{}
		if p.AmountReleased != nil {
			released = sql.NullFloat64{Float64: *p.AmountReleased, Valid: true}
		}
		_, err := tx.Exec(query,
			p.ID, p.AltID, p.Name, p.RaisedAmount, p.TargetAmount,
			released, string(p.Status), p.CurrentPhase, p.ROI, p.DurationMonths,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
		}
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (model.Project, error) {
	var p model.Project
	var altID sql.NullString
	var released sql.NullFloat64
	var status string

	err := s.Scan(
		&p.ID,
		&altID,
		&p.Name,
		&p.RaisedAmount,
		&p.TargetAmount,
		&released,
		&status,
		&p.CurrentPhase,
		&p.ROI,
		&p.DurationMonths,
	)
	if err == sql.ErrNoRows {
		return model.Project{}, err
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to scan project table results: %w", err)
	}

	p.AltID = altID.String
	p.Status = model.ProjectStatus(status)
	if released.Valid {
		p.AmountReleased = &released.Float64
	}
	return p, nil
}
