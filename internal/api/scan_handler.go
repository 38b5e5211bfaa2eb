package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/auth"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/internal/services"
)

// ScanHandler handles job scan operations
type ScanHandler struct {
	scanService services.ScanService
}

// NewScanHandler creates a new scan handler with service injection
func NewScanHandler(scanService services.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

// ScanJob scores a job posting against the caller's trauma profile. The
// route sits behind optional auth: anonymous callers always get a free
// preview, authenticated callers consume a credit unless they opt out.
func (h *ScanHandler) ScanJob(c *gin.Context) {
	var req repository.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var userID *uuid.UUID
	if id, ok := auth.CurrentUserID(c); ok {
		userID = &id
	}

	response, err := h.scanService.ScanJob(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetScans returns the authenticated user's scan history
func (h *ScanHandler) GetScans(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	scans, err := h.scanService.GetScans(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scans": scans,
		"count": len(scans),
	})
}

// GetProfile returns the user's latest scan viewed as their profile
func (h *ScanHandler) GetProfile(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	profile, err := h.scanService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RetakeSurvey deactivates the user's active scan
func (h *ScanHandler) RetakeSurvey(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.scanService.RetakeSurvey(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Survey reset, previous scan deactivated"})
}

// TransferPendingScan stores a pre-signup scan on the account without
// consuming a credit
func (h *ScanHandler) TransferPendingScan(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req repository.TransferScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	scan, err := h.scanService.TransferPendingScan(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Scan transferred",
		"scan":    scan,
	})
}
