package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/errors"
	"github.com/aoja-labs/jobscan-api/internal/ingest"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/models"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/internal/scoring"
)

// scanServiceImpl implements ScanService
type scanServiceImpl struct {
	repos  *repository.Repositories
	engine *scoring.ScoringEngine
	log    logger.Logger
}

// newScanService creates a new scan service implementation
func newScanService(repos *repository.Repositories, engine *scoring.ScoringEngine, log logger.Logger) ScanService {
	return &scanServiceImpl{
		repos:  repos,
		engine: engine,
		log:    log,
	}
}

// ScanJob scores a job posting. Anonymous callers and callers that opt out of
// consuming a credit get a preview: the full result, but nothing is charged
// and nothing is stored. A paid scan deducts one credit, replaces the user's
// active scan and returns the remaining balance.
func (s *scanServiceImpl) ScanJob(userID *uuid.UUID, req *repository.ScanRequest) (*repository.ScanResponse, error) {
	jobText := ingest.Normalize(req.JobDescription)
	if jobText == "" {
		return nil, errors.InvalidInput("job description is empty", nil)
	}

	result := s.engine.Score(jobText, req.Trauma)

	preview := userID == nil || !req.ShouldConsume()
	if preview {
		return &repository.ScanResponse{
			ScanResult:  result,
			CreditCost:  0,
			PreviewMode: true,
		}, nil
	}

	// Deduct and persist atomically so a failed insert never burns a credit
	var remaining int
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		deducted, err := repos.User.DeductCredit(*userID)
		if err != nil {
			return err
		}
		if !deducted {
			return errors.InsufficientCredits("no scan credits remaining", nil)
		}

		if err := s.persistScan(repos, *userID, jobText, req.Trauma, result); err != nil {
			return err
		}

		remaining, err = repos.User.GetCredits(*userID)
		return err
	})
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to complete scan: %w", err)
	}

	s.log.Info("scan completed", "user_id", userID.String(), "risk_level", result.RiskLevel, "credits_remaining", remaining)

	return &repository.ScanResponse{
		ScanResult:       result,
		CreditCost:       1,
		PreviewMode:      false,
		CreditsRemaining: &remaining,
	}, nil
}

// GetScans returns the user's scan history, newest first
func (s *scanServiceImpl) GetScans(userID uuid.UUID) ([]models.Scan, error) {
	scans, err := s.repos.Scan.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scans: %w", err)
	}
	return scans, nil
}

// GetProfile views the user's latest scan as their profile
func (s *scanServiceImpl) GetProfile(userID uuid.UUID) (*repository.ProfileResponse, error) {
	scan, err := s.repos.Scan.GetLatestByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if scan == nil {
		return nil, errors.NotFound("no scan on record", nil)
	}

	profile := &repository.ProfileResponse{
		ScanID:    scan.ID.String(),
		CreatedAt: scan.CreatedAt,
		IsActive:  scan.IsActive,
	}

	if len(scan.SurveyData) > 0 {
		var survey scoring.ProfileInput
		if err := json.Unmarshal(scan.SurveyData, &survey); err == nil {
			profile.Survey = &survey
		}
	}
	if len(scan.ScanResults) > 0 {
		var results scoring.ScanResult
		if err := json.Unmarshal(scan.ScanResults, &results); err == nil {
			profile.ScanResults = &results
		}
	}

	return profile, nil
}

// RetakeSurvey deactivates the user's active scan so a fresh survey can
// become the profile
func (s *scanServiceImpl) RetakeSurvey(userID uuid.UUID) error {
	if err := s.repos.Scan.DeactivateActive(userID); err != nil {
		return fmt.Errorf("failed to retake survey: %w", err)
	}
	return nil
}

// TransferPendingScan persists a scan taken before signup without consuming a
// credit. With job text present the posting is re-scored; without it only the
// survey is stored.
func (s *scanServiceImpl) TransferPendingScan(userID uuid.UUID, req *repository.TransferScanRequest) (*models.Scan, error) {
	var result *scoring.ScanResult
	jobText := ingest.Normalize(req.JobDescription)
	if jobText != "" {
		result = s.engine.Score(jobText, req.Trauma)
	}

	var stored *models.Scan
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := s.persistScan(repos, userID, jobText, req.Trauma, result); err != nil {
			return err
		}
		var err error
		stored, err = repos.Scan.GetLatestByUser(userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to transfer scan: %w", err)
	}

	s.log.Info("pending scan transferred", "user_id", userID.String(), "survey_only", result == nil)
	return stored, nil
}

// persistScan deactivates the previous active scan and inserts the new one.
// A nil result stores a survey-only row with no completion time.
func (s *scanServiceImpl) persistScan(repos *repository.Repositories, userID uuid.UUID, jobText string, survey scoring.ProfileInput, result *scoring.ScanResult) error {
	surveyData, err := json.Marshal(survey)
	if err != nil {
		return fmt.Errorf("failed to marshal survey: %w", err)
	}

	scan := &models.Scan{
		UserID:         userID,
		JobDescription: jobText,
		SurveyData:     surveyData,
		IsActive:       true,
	}

	if result != nil {
		resultData, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal scan results: %w", err)
		}
		now := time.Now()
		scan.ScanResults = resultData
		scan.CompletedAt = &now
	}

	if err := repos.Scan.DeactivateActive(userID); err != nil {
		return err
	}
	return repos.Scan.Create(scan)
}
