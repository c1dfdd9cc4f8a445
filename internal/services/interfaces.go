package services

import (
	"context"
	"io"
	"time"

	"dreamfund/internal/models"
	"dreamfund/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// DreamUpdate holds the optional fields accepted by UpdateDream. Nil
// means "leave unchanged". StartDate is deliberately absent: it is set
// at creation and immutable afterwards, which keeps the deadline stable
// across goal edits.
type DreamUpdate struct {
	Name         *string
	ImageURL     *string
	TargetAmount *float64
	TimeValue    *int
	TimeUnit     *models.TimeUnit
	SavedAmount  *float64
}

// LocalSnapshot is the client's pre-authentication cached dream record,
// posted once after first login. Fields mirror the browser cache keys;
// everything is optional and missing values get lenient defaults.
type LocalSnapshot struct {
	DreamName     string  `json:"dreamName"`
	ImageURL      string  `json:"imageUrl"`
	TargetAmount  float64 `json:"targetAmount"`
	TimeValue     int     `json:"timeValue"`
	TimeUnit      string  `json:"timeUnit"`
	SavedAmount   float64 `json:"savedAmount"`
	StartDate     string  `json:"startDate"`
	LastSavedDate string  `json:"lastSavedDate"`
}

// DreamServicer defines the contract for dream-related business logic.
type DreamServicer interface {
	GetUserDream(userID uint) (*models.Dream, error)
	CreateDream(userID uint, name, imageURL string, targetAmount float64, timeValue int, timeUnit models.TimeUnit, startDate time.Time) (*models.Dream, error)
	UpdateDream(userID uint, update DreamUpdate) (*models.Dream, error)
	AddSavings(userID uint, amount float64) (*models.Dream, error)
	GetContributions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error)
	MigrateLocalCache(userID uint, snapshot LocalSnapshot) (bool, error)
}

// ImageServicer defines the contract for dream image uploads.
type ImageServicer interface {
	// Upload validates and stores an image, returning its public URL.
	Upload(ctx context.Context, userID uint, r io.Reader, contentType string, size int64, originalName string) (string, error)
	// Delete removes a previously uploaded image by its public URL.
	// Best-effort: failures are logged, never returned, so replacing a
	// stale image can never block saving a goal.
	Delete(ctx context.Context, publicURL string)
	// BucketExists probes the backing container; diagnostics only.
	BucketExists(ctx context.Context) (bool, error)
}

// AuditServicer defines the contract for audit log recording.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
