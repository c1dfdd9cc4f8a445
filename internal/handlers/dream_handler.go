package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "dreamfund/internal/errors"
	"dreamfund/internal/models"
	"dreamfund/internal/pagination"
	"dreamfund/internal/progress"
	"dreamfund/internal/services"
)

// DreamHandler handles dream-related requests
type DreamHandler struct {
	dreamService services.DreamServicer
	imageService services.ImageServicer
	auditService services.AuditServicer
}

// NewDreamHandler creates a new DreamHandler
func NewDreamHandler(dreamService services.DreamServicer, imageService services.ImageServicer, auditService services.AuditServicer) *DreamHandler {
	return &DreamHandler{
		dreamService: dreamService,
		imageService: imageService,
		auditService: auditService,
	}
}

// CreateDreamRequest represents the goal-setup payload
type CreateDreamRequest struct {
	Name         string     `json:"dream_name" binding:"required,max=255"`
	ImageURL     string     `json:"image_url" binding:"omitempty,url"`
	TargetAmount float64    `json:"target_amount" binding:"required,gt=0"`
	TimeValue    int        `json:"time_value" binding:"required,gt=0"`
	TimeUnit     string     `json:"time_unit" binding:"required,time_unit"`
	StartDate    *time.Time `json:"start_date"`
}

// UpdateDreamRequest represents a partial goal edit. Absent fields are
// left unchanged; start_date is not accepted.
type UpdateDreamRequest struct {
	Name         *string  `json:"dream_name" binding:"omitempty,max=255"`
	ImageURL     *string  `json:"image_url" binding:"omitempty"`
	TargetAmount *float64 `json:"target_amount" binding:"omitempty,gt=0"`
	TimeValue    *int     `json:"time_value" binding:"omitempty,gt=0"`
	TimeUnit     *string  `json:"time_unit" binding:"omitempty,time_unit"`
	SavedAmount  *float64 `json:"saved_amount" binding:"omitempty,gte=0"`
}

// AddSavingsRequest represents a contribution payload
type AddSavingsRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// dreamResponse bundles the record with freshly derived metrics so the
// dashboard never caches stale numbers.
func dreamResponse(dream *models.Dream) gin.H {
	return gin.H{
		"dream":    dream,
		"progress": progress.Compute(dream, time.Now()),
	}
}

// GetDream returns the user's dream with derived progress
// @Summary     Get the user's dream
// @Description Get the authenticated user's dream and derived progress metrics. 404 means the user has not set up a goal yet.
// @Tags        dream
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Dream with progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No dream yet"
// @Router      /dream [get]
func (h *DreamHandler) GetDream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dream, err := h.dreamService.GetUserDream(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dreamResponse(dream))
}

// CreateDream creates the user's dream
// @Summary     Create a dream
// @Description Create the authenticated user's savings goal. Fails with 409 if one already exists.
// @Tags        dream
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDreamRequest true "Goal setup data"
// @Success     201 {object} map[string]interface{} "Dream created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Dream already exists"
// @Router      /dream [post]
func (h *DreamHandler) CreateDream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	dream, err := h.dreamService.CreateDream(userID, req.Name, req.ImageURL,
		req.TargetAmount, req.TimeValue, models.TimeUnit(req.TimeUnit), startDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "dream", dream.ID, c.ClientIP(), map[string]interface{}{
		"dream_name":    dream.Name,
		"target_amount": dream.TargetAmount,
	})

	c.JSON(http.StatusCreated, dreamResponse(dream))
}

// UpdateDream edits the user's dream
// @Summary     Update the dream
// @Description Merge the supplied fields into the authenticated user's dream. start_date cannot be changed. A replaced image is deleted from storage best-effort.
// @Tags        dream
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateDreamRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated dream"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No dream yet"
// @Router      /dream [put]
func (h *DreamHandler) UpdateDream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Remember the current image so a replaced one can be cleaned up
	// after a successful save.
	var staleImageURL string
	if req.ImageURL != nil {
		if current, err := h.dreamService.GetUserDream(userID); err == nil &&
			current.ImageURL != "" && current.ImageURL != *req.ImageURL {
			staleImageURL = current.ImageURL
		}
	}

	update := services.DreamUpdate{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount,
		TimeValue:    req.TimeValue,
		SavedAmount:  req.SavedAmount,
	}
	if req.TimeUnit != nil {
		unit := models.TimeUnit(*req.TimeUnit)
		update.TimeUnit = &unit
	}

	dream, err := h.dreamService.UpdateDream(userID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if staleImageURL != "" {
		h.imageService.Delete(c.Request.Context(), staleImageURL)
	}

	h.auditService.Log(userID, "update", "dream", dream.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, dreamResponse(dream))
}

// AddSavings records a contribution
// @Summary     Add savings
// @Description Add a contribution to the authenticated user's dream.
// @Tags        dream
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddSavingsRequest true "Contribution amount"
// @Success     200 {object} map[string]interface{} "Updated dream"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     404 {object} ErrorResponse "No dream to contribute to"
// @Router      /dream/savings [post]
func (h *DreamHandler) AddSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dream, err := h.dreamService.AddSavings(userID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "contribute", "dream", dream.ID, c.ClientIP(), map[string]interface{}{
		"amount": req.Amount,
	})

	c.JSON(http.StatusOK, dreamResponse(dream))
}

// GetContributions lists the user's contribution history
// @Summary     List contributions
// @Description Paginated contribution history for the authenticated user's dream, most recent first.
// @Tags        dream
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Contribution] "Contribution page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dream/savings [get]
func (h *DreamHandler) GetContributions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.dreamService.GetContributions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProgress returns derived metrics only
// @Summary     Get progress metrics
// @Description Derived metrics for the authenticated user's dream, recomputed on every call.
// @Tags        dream
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} progress.Report "Progress metrics"
// @Failure     404 {object} ErrorResponse "No dream yet"
// @Router      /dream/progress [get]
func (h *DreamHandler) GetProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dream, err := h.dreamService.GetUserDream(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress.Compute(dream, time.Now()))
}

// MigrateLocalCache imports a client-side cached dream
// @Summary     Migrate local cache
// @Description One-time import of the client's locally cached dream. Idempotent; an existing remote record wins.
// @Tags        dream
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.LocalSnapshot true "Cached dream snapshot"
// @Success     200 {object} map[string]bool "Migration outcome"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dream/migrate [post]
func (h *DreamHandler) MigrateLocalCache(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The snapshot is whatever the browser had cached; every field is
	// optional and malformed values degrade to defaults downstream.
	var snapshot services.LocalSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	migrated, err := h.dreamService.MigrateLocalCache(userID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if migrated {
		h.auditService.Log(userID, "migrate", "dream", 0, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, gin.H{"migrated": migrated})
}
