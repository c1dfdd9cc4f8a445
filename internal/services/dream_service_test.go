package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"dreamfund/internal/models"
	"dreamfund/internal/pagination"
	"dreamfund/internal/testutil"
)

func TestCreateDream(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		dream, err := svc.CreateDream(user.ID, "Trip to Japan", "", 5000, 12, models.TimeUnitMonths, start)
		testutil.AssertNoError(t, err)

		if dream.ID == 0 {
			t.Fatal("expected non-zero dream ID")
		}
		if dream.Name != "Trip to Japan" {
			t.Errorf("expected name Trip to Japan, got %s", dream.Name)
		}
		if dream.SavedAmount != 0 {
			t.Errorf("expected zero saved amount, got %f", dream.SavedAmount)
		}
		if !dream.StartDate.Equal(start) {
			t.Errorf("expected start date %v, got %v", start, dream.StartDate)
		}
		if dream.LastSavedDate != nil {
			t.Error("expected nil last saved date on a new dream")
		}
	})

	t.Run("second_dream_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateDream(user.ID, "First", "", 100, 30, models.TimeUnitDays, time.Now())
		testutil.AssertNoError(t, err)

		_, err = svc.CreateDream(user.ID, "Second", "", 200, 60, models.TimeUnitDays, time.Now())
		testutil.AssertAppError(t, err, "DREAM_EXISTS")
	})

	t.Run("concurrent_insert_hits_unique_index", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, user.ID)

		// A create racing past the pre-flight count lands on the unique
		// index; the driver error must translate so the conflict mapping
		// in CreateDream and MigrateLocalCache can classify it.
		err := db.Create(&models.Dream{
			UserID:       user.ID,
			Name:         "Second device",
			TargetAmount: 200,
			TimeValue:    60,
			TimeUnit:     models.TimeUnitDays,
			StartDate:    time.Now(),
		}).Error
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Errorf("expected gorm.ErrDuplicatedKey, got %v", err)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateDream(user.ID, "", "", 100, 30, models.TimeUnitDays, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateDream(user.ID, "Dream", "", 0, 30, models.TimeUnitDays, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateDream(user.ID, "Dream", "", -50, 30, models.TimeUnitDays, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_start_date_defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		dream, err := svc.CreateDream(user.ID, "Dream", "", 100, 30, models.TimeUnitDays, time.Time{})
		testutil.AssertNoError(t, err)

		if dream.StartDate.IsZero() {
			t.Error("expected start date to default to now")
		}
	})
}

func TestGetUserDream(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestDream(t, db, user.ID)

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)

		if dream.ID != created.ID {
			t.Errorf("expected dream %d, got %d", created.ID, dream.ID)
		}
	})

	t.Run("first_time_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetUserDream(user.ID)
		testutil.AssertAppError(t, err, "DREAM_NOT_FOUND")
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, owner.ID)

		_, err := svc.GetUserDream(other.ID)
		testutil.AssertAppError(t, err, "DREAM_NOT_FOUND")
	})
}

func TestUpdateDream(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }
	intPtr := func(i int) *int { return &i }

	t.Run("partial_update_leaves_rest_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestDreamWithTarget(t, db, user.ID, 1000)

		dream, err := svc.UpdateDream(user.ID, DreamUpdate{TargetAmount: floatPtr(2000)})
		testutil.AssertNoError(t, err)

		if dream.TargetAmount != 2000 {
			t.Errorf("expected target 2000, got %f", dream.TargetAmount)
		}
		if dream.Name != created.Name {
			t.Errorf("expected name unchanged, got %s", dream.Name)
		}
		if dream.TimeValue != created.TimeValue || dream.TimeUnit != created.TimeUnit {
			t.Error("expected horizon unchanged")
		}
	})

	t.Run("saved_amount_untouched_unless_supplied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		dream := testutil.CreateTestDream(t, db, user.ID)
		testutil.CreateTestContribution(t, db, dream.ID, user.ID, 250)

		updated, err := svc.UpdateDream(user.ID, DreamUpdate{Name: strPtr("Renamed")})
		testutil.AssertNoError(t, err)

		if updated.SavedAmount != 250 {
			t.Errorf("expected saved amount 250 after rename, got %f", updated.SavedAmount)
		}

		updated, err = svc.UpdateDream(user.ID, DreamUpdate{SavedAmount: floatPtr(100)})
		testutil.AssertNoError(t, err)

		if updated.SavedAmount != 100 {
			t.Errorf("expected saved amount 100 after explicit edit, got %f", updated.SavedAmount)
		}
	})

	t.Run("start_date_immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestDream(t, db, user.ID)

		unit := models.TimeUnitMonths
		dream, err := svc.UpdateDream(user.ID, DreamUpdate{
			TimeValue: intPtr(6),
			TimeUnit:  &unit,
		})
		testutil.AssertNoError(t, err)

		if !dream.StartDate.Equal(created.StartDate) {
			t.Errorf("expected start date %v unchanged, got %v", created.StartDate, dream.StartDate)
		}
	})

	t.Run("invalid_values_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, user.ID)

		_, err := svc.UpdateDream(user.ID, DreamUpdate{Name: strPtr("")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.UpdateDream(user.ID, DreamUpdate{TargetAmount: floatPtr(-10)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.UpdateDream(user.ID, DreamUpdate{SavedAmount: floatPtr(-1)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("no_dream", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateDream(user.ID, DreamUpdate{Name: strPtr("Anything")})
		testutil.AssertAppError(t, err, "DREAM_NOT_FOUND")
	})
}

func TestAddSavings(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, user.ID)

		dream, err := svc.AddSavings(user.ID, 50)
		testutil.AssertNoError(t, err)
		if dream.SavedAmount != 50 {
			t.Errorf("expected saved amount 50, got %f", dream.SavedAmount)
		}

		dream, err = svc.AddSavings(user.ID, 50)
		testutil.AssertNoError(t, err)
		if dream.SavedAmount != 100 {
			t.Errorf("expected saved amount 100, got %f", dream.SavedAmount)
		}
		if dream.LastSavedDate == nil {
			t.Fatal("expected last saved date to be set")
		}
		if time.Since(*dream.LastSavedDate) > time.Minute {
			t.Errorf("expected recent last saved date, got %v", dream.LastSavedDate)
		}

		var ledger int64
		db.Model(&models.Contribution{}).Where("user_id = ?", user.ID).Count(&ledger)
		if ledger != 2 {
			t.Errorf("expected 2 contribution rows, got %d", ledger)
		}
	})

	t.Run("non_positive_amount_leaves_state_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, user.ID)

		_, err := svc.AddSavings(user.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.AddSavings(user.ID, -25)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)
		if dream.SavedAmount != 0 {
			t.Errorf("expected saved amount untouched, got %f", dream.SavedAmount)
		}
		if dream.LastSavedDate != nil {
			t.Error("expected last saved date untouched")
		}

		var ledger int64
		db.Model(&models.Contribution{}).Where("user_id = ?", user.ID).Count(&ledger)
		if ledger != 0 {
			t.Errorf("expected empty ledger, got %d rows", ledger)
		}
	})

	t.Run("no_dream", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddSavings(user.ID, 10)
		testutil.AssertAppError(t, err, "DREAM_NOT_FOUND")
	})
}

func TestGetContributions(t *testing.T) {
	t.Run("most_recent_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDream(t, db, user.ID)

		for _, amount := range []float64{10, 20, 30} {
			_, err := svc.AddSavings(user.ID, amount)
			testutil.AssertNoError(t, err)
			time.Sleep(5 * time.Millisecond)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetContributions(user.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 contributions, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 30 {
			t.Errorf("expected latest contribution first, got %f", result.Data[0].Amount)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		dream := testutil.CreateTestDream(t, db, user.ID)

		for i := 0; i < 5; i++ {
			testutil.CreateTestContribution(t, db, dream.ID, user.ID, 10)
		}

		page := pagination.PageRequest{Page: 2, PageSize: 2}
		result, err := svc.GetContributions(user.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 5 {
			t.Errorf("expected 5 total, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", result.TotalPages)
		}
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		dream := testutil.CreateTestDream(t, db, owner.ID)
		testutil.CreateTestContribution(t, db, dream.ID, owner.ID, 42)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetContributions(other.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 0 {
			t.Errorf("expected no contributions for other user, got %d", result.TotalItems)
		}
	})
}

func TestMigrateLocalCache(t *testing.T) {
	snapshot := LocalSnapshot{
		DreamName:    "Cached Dream",
		TargetAmount: 3000,
		TimeValue:    6,
		TimeUnit:     "months",
		SavedAmount:  150,
		StartDate:    "2026-01-15",
	}

	t.Run("creates_from_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		migrated, err := svc.MigrateLocalCache(user.ID, snapshot)
		testutil.AssertNoError(t, err)
		if !migrated {
			t.Fatal("expected migration to create a dream")
		}

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)
		if dream.Name != "Cached Dream" {
			t.Errorf("expected name Cached Dream, got %s", dream.Name)
		}
		if dream.SavedAmount != 150 {
			t.Errorf("expected saved amount 150, got %f", dream.SavedAmount)
		}
		want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		if !dream.StartDate.Equal(want) {
			t.Errorf("expected start date %v, got %v", want, dream.StartDate)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		migrated, err := svc.MigrateLocalCache(user.ID, snapshot)
		testutil.AssertNoError(t, err)
		if !migrated {
			t.Fatal("expected first migration to create a dream")
		}

		migrated, err = svc.MigrateLocalCache(user.ID, snapshot)
		testutil.AssertNoError(t, err)
		if migrated {
			t.Error("expected second migration to be a no-op")
		}

		var count int64
		db.Model(&models.Dream{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly 1 dream, got %d", count)
		}
	})

	t.Run("existing_remote_record_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)
		existing := testutil.CreateTestDream(t, db, user.ID)

		migrated, err := svc.MigrateLocalCache(user.ID, snapshot)
		testutil.AssertNoError(t, err)
		if migrated {
			t.Error("expected migration to be skipped")
		}

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)
		if dream.Name != existing.Name {
			t.Errorf("expected remote record untouched, got %s", dream.Name)
		}
	})

	t.Run("unusable_snapshot_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		migrated, err := svc.MigrateLocalCache(user.ID, LocalSnapshot{TargetAmount: 100})
		testutil.AssertNoError(t, err)
		if migrated {
			t.Error("expected nameless snapshot to be skipped")
		}

		migrated, err = svc.MigrateLocalCache(user.ID, LocalSnapshot{DreamName: "No Target"})
		testutil.AssertNoError(t, err)
		if migrated {
			t.Error("expected targetless snapshot to be skipped")
		}
	})

	t.Run("lenient_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		migrated, err := svc.MigrateLocalCache(user.ID, LocalSnapshot{
			DreamName:    "Sparse",
			TargetAmount: 500,
			TimeUnit:     "fortnights",
			SavedAmount:  -20,
			StartDate:    "not a date",
		})
		testutil.AssertNoError(t, err)
		if !migrated {
			t.Fatal("expected sparse snapshot to migrate")
		}

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)
		if dream.TimeValue != 1 {
			t.Errorf("expected time value default 1, got %d", dream.TimeValue)
		}
		if dream.TimeUnit != models.TimeUnitDays {
			t.Errorf("expected unit default days, got %s", dream.TimeUnit)
		}
		if dream.SavedAmount != 0 {
			t.Errorf("expected negative saved amount clamped to 0, got %f", dream.SavedAmount)
		}
		if dream.StartDate.IsZero() {
			t.Error("expected unparseable start date to fall back to now")
		}
		if dream.LastSavedDate != nil {
			t.Error("expected absent last saved date to stay nil")
		}
	})

	t.Run("javascript_date_string", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDreamService(db)
		user := testutil.CreateTestUser(t, db)

		migrated, err := svc.MigrateLocalCache(user.ID, LocalSnapshot{
			DreamName:    "JS Cache",
			TargetAmount: 800,
			TimeValue:    90,
			TimeUnit:     "days",
			StartDate:    "Thu Feb 05 2026",
		})
		testutil.AssertNoError(t, err)
		if !migrated {
			t.Fatal("expected migration to succeed")
		}

		dream, err := svc.GetUserDream(user.ID)
		testutil.AssertNoError(t, err)
		want := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
		if !dream.StartDate.Equal(want) {
			t.Errorf("expected start date %v, got %v", want, dream.StartDate)
		}
	})
}
