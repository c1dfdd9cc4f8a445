package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dreamfund/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestDream creates a dream with a one-year horizon for the user.
func CreateTestDream(t *testing.T, db *gorm.DB, userID uint) *models.Dream {
	t.Helper()
	return CreateTestDreamWithTarget(t, db, userID, 1000)
}

// CreateTestDreamWithTarget creates a dream with the given target amount.
func CreateTestDreamWithTarget(t *testing.T, db *gorm.DB, userID uint, target float64) *models.Dream {
	t.Helper()

	dream := &models.Dream{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Dream %d", nextID()),
		TargetAmount: target,
		TimeValue:    1,
		TimeUnit:     models.TimeUnitYears,
		StartDate:    time.Now().Truncate(24 * time.Hour),
	}
	if err := db.Create(dream).Error; err != nil {
		t.Fatalf("failed to create test dream: %v", err)
	}
	return dream
}

// CreateTestContribution records a contribution against the dream and
// bumps saved_amount the way the service does.
func CreateTestContribution(t *testing.T, db *gorm.DB, dreamID, userID uint, amount float64) *models.Contribution {
	t.Helper()

	contribution := &models.Contribution{
		DreamID:    dreamID,
		UserID:     userID,
		Amount:     amount,
		RecordedAt: time.Now(),
	}
	if err := db.Create(contribution).Error; err != nil {
		t.Fatalf("failed to create test contribution: %v", err)
	}
	if err := db.Model(&models.Dream{}).Where("id = ?", dreamID).
		Update("saved_amount", gorm.Expr("saved_amount + ?", amount)).Error; err != nil {
		t.Fatalf("failed to bump saved amount: %v", err)
	}
	return contribution
}
