package service_test

import (
	"bytes"
	"context"
	"testing"

	"devpulse/internal/crypto"
	"devpulse/internal/models"
	"devpulse/internal/repository"
	"devpulse/internal/service"
	"devpulse/internal/testhelpers"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newPrivacyService(t *testing.T) (*gorm.DB, *repository.Repository, service.PrivacyService) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	t.Cleanup(func() { testhelpers.CleanDB(t, db) })
	repo := repository.New(db)

	cipher, err := crypto.New([]byte("devpulse-dev-key-32-bytes-long!!"))
	if err != nil {
		t.Fatalf("failed to build cipher: %v", err)
	}
	return db, repo, service.NewPrivacyService(repo, cipher, zap.NewNop())
}

func TestPrivacyService_StoreAndGet(t *testing.T) {
	db, _, svc := newPrivacyService(t)
	ctx := context.Background()

	u := testhelpers.CreateTestUser(t, db, "alice", "core")

	if err := svc.Store(ctx, u.ID, u.ID, "token", "github", "ghp_secret_value"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// The value is encrypted at rest.
	var row models.SensitiveData
	if err := db.Where("user_id = ?", u.ID).First(&row).Error; err != nil {
		t.Fatalf("expected stored row: %v", err)
	}
	if bytes.Contains(row.Ciphertext, []byte("ghp_secret_value")) {
		t.Error("plaintext leaked into ciphertext column")
	}

	got, err := svc.Get(ctx, u.ID, u.ID, "token", "github")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "ghp_secret_value" {
		t.Errorf("round trip mismatch: got %q", got)
	}

	// Overwrite through the upsert path.
	if err := svc.Store(ctx, u.ID, u.ID, "token", "github", "rotated"); err != nil {
		t.Fatalf("Store (overwrite) failed: %v", err)
	}
	got, err = svc.Get(ctx, u.ID, u.ID, "token", "github")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if got != "rotated" {
		t.Errorf("expected rotated value, got %q", got)
	}

	var count int64
	db.Model(&models.SensitiveData{}).Where("user_id = ?", u.ID).Count(&count)
	if count != 1 {
		t.Errorf("upsert must keep a single row per user+type+key, got %d", count)
	}
}

func TestPrivacyService_AuditTrail(t *testing.T) {
	db, _, svc := newPrivacyService(t)
	ctx := context.Background()

	u := testhelpers.CreateTestUser(t, db, "bob", "core")

	if err := svc.Store(ctx, u.ID, u.ID, "pii", "phone", "+1 555 0100"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := svc.Get(ctx, u.ID, u.ID, "pii", "phone"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := svc.Delete(ctx, u.ID, u.ID, "pii", "phone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := svc.ListAudit(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 audit entries (write, read, delete), got %d", len(entries))
	}

	actions := map[models.AuditAction]bool{}
	for _, e := range entries {
		actions[e.Action] = true
		if e.Resource != "sensitive_data/pii" {
			t.Errorf("unexpected audit resource %q", e.Resource)
		}
	}
	for _, want := range []models.AuditAction{models.AuditWrite, models.AuditRead, models.AuditDelete} {
		if !actions[want] {
			t.Errorf("missing audit action %s", want)
		}
	}
}

func TestPrivacyService_GetMissing(t *testing.T) {
	db, _, svc := newPrivacyService(t)
	u := testhelpers.CreateTestUser(t, db, "carol", "core")

	_, err := svc.Get(context.Background(), u.ID, u.ID, "token", "missing")
	serr, ok := err.(*service.Error)
	if !ok || serr.Code != service.ErrorCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestPrivacyService_DeleteUserData(t *testing.T) {
	db, repo, svc := newPrivacyService(t)
	ctx := context.Background()

	u := testhelpers.CreateTestUser(t, db, "dave", "core")
	if err := db.Create(&models.Session{Token: "tok", UserID: u.ID}).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if err := svc.Store(ctx, u.ID, u.ID, "pii", "address", "10 Main St"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := repo.Metrics.UpsertBurnoutMetric(ctx, &models.BurnoutMetric{UserID: u.ID}); err != nil {
		t.Fatalf("failed to seed burnout metric: %v", err)
	}

	if err := svc.DeleteUserData(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUserData failed: %v", err)
	}

	for table, model := range map[string]any{
		"users":           &models.User{},
		"sessions":        &models.Session{},
		"user_settings":   &models.UserSettings{},
		"sensitive_data":  &models.SensitiveData{},
		"burnout_metrics": &models.BurnoutMetric{},
		"audit_logs":      &models.AuditLog{},
	} {
		column := "user_id"
		if table == "audit_logs" {
			column = "actor_id"
		}
		var count int64
		db.Model(model).Where(column+" = ?", u.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no %s rows after deletion, found %d", table, count)
		}
	}
}
