package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/models"
)

// scanRepository implements ScanRepository
type scanRepository struct {
	db dbExecutor
}

// NewScanRepository creates a new scan repository
func NewScanRepository(db dbExecutor) ScanRepository {
	return &scanRepository{db: db}
}

// Create persists a scan. The job description is truncated before insert so a
// pasted posting never bloats the row.
func (r *scanRepository) Create(scan *models.Scan) error {
	if scan.ID == uuid.Nil {
		scan.ID = uuid.New()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}
	scan.JobDescription = models.TruncateJobDescription(scan.JobDescription)

	query := `
		INSERT INTO scans (id, user_id, job_description, survey_data, scan_results, is_active, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var results interface{}
	if scan.ScanResults != nil {
		results = []byte(scan.ScanResults)
	}

	_, err := r.db.Exec(query,
		scan.ID, scan.UserID, scan.JobDescription, []byte(scan.SurveyData),
		results, scan.IsActive, scan.CreatedAt, scan.CompletedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create scan: %w", err)
	}

	return nil
}

// GetByUser returns all scans for a user, newest first
func (r *scanRepository) GetByUser(userID uuid.UUID) ([]models.Scan, error) {
	query := `
		SELECT id, user_id, job_description, survey_data, scan_results, is_active, created_at, completed_at
		FROM scans WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scans: %w", err)
	}
	defer rows.Close()

	scans := []models.Scan{}
	for rows.Next() {
		scan, err := scanScanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}

	return scans, nil
}

// GetLatestByUser returns the most recent scan for a user
func (r *scanRepository) GetLatestByUser(userID uuid.UUID) (*models.Scan, error) {
	query := `
		SELECT id, user_id, job_description, survey_data, scan_results, is_active, created_at, completed_at
		FROM scans WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get latest scan: %w", err)
		}
		return nil, nil
	}

	return scanScanRow(rows)
}

// DeactivateActive flips is_active off on the user's scans
func (r *scanRepository) DeactivateActive(userID uuid.UUID) error {
	query := `UPDATE scans SET is_active = false WHERE user_id = $1 AND is_active = true`

	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to deactivate scans: %w", err)
	}

	return nil
}

func scanScanRow(rows *sql.Rows) (*models.Scan, error) {
	scan := &models.Scan{}
	var surveyData, scanResults []byte
	var completedAt sql.NullTime

	err := rows.Scan(
		&scan.ID, &scan.UserID, &scan.JobDescription, &surveyData,
		&scanResults, &scan.IsActive, &scan.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	scan.SurveyData = surveyData
	if scanResults != nil {
		scan.ScanResults = scanResults
	}
	if completedAt.Valid {
		scan.CompletedAt = &completedAt.Time
	}

	return scan, nil
}
