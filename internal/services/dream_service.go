package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "dreamfund/internal/errors"
	"dreamfund/internal/logger"
	"dreamfund/internal/models"
	"dreamfund/internal/pagination"
)

// dreamService handles dream-related business logic. Every query is
// scoped to the owning user; the unique index on dreams.user_id is the
// single source of truth for the one-dream-per-user rule.
type dreamService struct {
	db *gorm.DB
}

// NewDreamService creates a new DreamServicer.
func NewDreamService(db *gorm.DB) DreamServicer {
	return &dreamService{db: db}
}

// GetUserDream returns the user's dream. ErrDreamNotFound is the normal
// outcome for a first-time user, not a failure.
func (s *dreamService) GetUserDream(userID uint) (*models.Dream, error) {
	var dream models.Dream
	if err := s.db.Where("user_id = ?", userID).First(&dream).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDreamNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &dream, nil
}

// CreateDream creates the user's dream. Fails with ErrDreamExists if one
// already exists; callers fall back to UpdateDream.
func (s *dreamService) CreateDream(
	userID uint,
	name, imageURL string,
	targetAmount float64,
	timeValue int,
	timeUnit models.TimeUnit,
	startDate time.Time,
) (*models.Dream, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dream name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}
	if timeValue <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "time value must be positive")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	var count int64
	s.db.Model(&models.Dream{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDreamExists
	}

	dream := &models.Dream{
		UserID:       userID,
		Name:         name,
		ImageURL:     imageURL,
		TargetAmount: targetAmount,
		TimeValue:    timeValue,
		TimeUnit:     timeUnit,
		SavedAmount:  0,
		StartDate:    startDate,
	}

	if err := s.db.Create(dream).Error; err != nil {
		// The pre-check races with concurrent creates; the unique index
		// is authoritative.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDreamExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return dream, nil
}

// UpdateDream merges only the supplied fields into the user's dream.
// start_date is not an accepted field and saved_amount changes only when
// the caller explicitly supplies a new value, so editing a goal never
// silently resets progress.
func (s *dreamService) UpdateDream(userID uint, update DreamUpdate) (*models.Dream, error) {
	dream, err := s.GetUserDream(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dream name is required")
		}
		updates["dream_name"] = *update.Name
	}
	if update.ImageURL != nil {
		updates["image_url"] = *update.ImageURL
	}
	if update.TargetAmount != nil {
		if *update.TargetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		updates["target_amount"] = *update.TargetAmount
	}
	if update.TimeValue != nil {
		if *update.TimeValue <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "time value must be positive")
		}
		updates["time_value"] = *update.TimeValue
	}
	if update.TimeUnit != nil {
		updates["time_unit"] = *update.TimeUnit
	}
	if update.SavedAmount != nil {
		if *update.SavedAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
		}
		updates["saved_amount"] = *update.SavedAmount
	}

	if len(updates) > 0 {
		if err := s.db.Model(dream).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetUserDream(userID)
}

// AddSavings records a contribution: saved_amount is increased with an
// in-database increment rather than read-modify-write, so concurrent
// contributions from multiple devices cannot lose updates. The ledger
// row is written in the same transaction.
func (s *dreamService) AddSavings(userID uint, amount float64) (*models.Dream, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be positive")
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var dream models.Dream
		if err := tx.Where("user_id = ?", userID).First(&dream).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNothingToFund
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Dream{}).Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"saved_amount":    gorm.Expr("saved_amount + ?", amount),
				"last_saved_date": &now,
			}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		contribution := &models.Contribution{
			DreamID:    dream.ID,
			UserID:     userID,
			Amount:     amount,
			RecordedAt: now,
		}
		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserDream(userID)
}

// GetContributions returns the user's contribution history, most recent
// first.
func (s *dreamService) GetContributions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error) {
	page.Defaults()

	base := s.db.Model(&models.Contribution{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contributions []models.Contribution
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contributions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MigrateLocalCache creates the user's dream from a client-side cached
// snapshot. Idempotent: an existing remote record always wins. Unusable
// snapshots (no name or no positive target) are skipped silently; the
// migration is opportunistic and must never fail the login flow.
// Returns true when a record was created.
func (s *dreamService) MigrateLocalCache(userID uint, snapshot LocalSnapshot) (bool, error) {
	if _, err := s.GetUserDream(userID); err == nil {
		return false, nil
	} else if !errors.Is(err, apperrors.ErrDreamNotFound) {
		return false, err
	}

	if snapshot.DreamName == "" || snapshot.TargetAmount <= 0 {
		logger.Get().Infow("skipping local cache migration: unusable snapshot",
			"user_id", userID,
			"has_name", snapshot.DreamName != "",
			"target_amount", snapshot.TargetAmount,
		)
		return false, nil
	}

	timeValue := snapshot.TimeValue
	if timeValue <= 0 {
		timeValue = 1
	}
	timeUnit := models.TimeUnit(snapshot.TimeUnit)
	switch timeUnit {
	case models.TimeUnitDays, models.TimeUnitMonths, models.TimeUnitYears:
	default:
		timeUnit = models.TimeUnitDays
	}
	savedAmount := snapshot.SavedAmount
	if savedAmount < 0 {
		savedAmount = 0
	}

	dream := &models.Dream{
		UserID:        userID,
		Name:          snapshot.DreamName,
		ImageURL:      snapshot.ImageURL,
		TargetAmount:  snapshot.TargetAmount,
		TimeValue:     timeValue,
		TimeUnit:      timeUnit,
		SavedAmount:   savedAmount,
		StartDate:     parseSnapshotDate(snapshot.StartDate, time.Now()),
		LastSavedDate: parseOptionalSnapshotDate(snapshot.LastSavedDate),
	}

	if err := s.db.Create(dream).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against another device's migration; the
			// existing record wins.
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("migrated local cache to remote dream",
		"user_id", userID, "dream_id", dream.ID)
	return true, nil
}

// snapshotDateLayouts covers the formats browsers put in the cache:
// ISO timestamps and JavaScript's Date.toDateString output.
var snapshotDateLayouts = []string{
	time.RFC3339,
	"Mon Jan 02 2006",
	"2006-01-02",
}

func parseSnapshotDate(value string, fallback time.Time) time.Time {
	for _, layout := range snapshotDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return fallback
}

func parseOptionalSnapshotDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range snapshotDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
