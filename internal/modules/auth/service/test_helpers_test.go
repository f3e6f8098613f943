package service

import (
	"context"
	"testing"
	"time"

	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	userrepo "stored-image-server/internal/modules/user/repo"
	userservice "stored-image-server/internal/modules/user/service"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/testutils"
	"stored-image-server/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 5, 6, 19, 59, 16, 123456789, time.UTC)

type testEnv struct {
	service  *Service
	signer   *utils.TokenSigner
	registry *prometheus.Registry
	db       *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	appService := platformservice.NewAppService()
	appService.SetClock(func() time.Time { return fixedNow })
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	userSvc := userservice.New(appService, userrepo.NewUserRepository(gdb), m)
	signer := utils.NewTokenSigner("test-secret", time.Hour)
	return &testEnv{
		service:  New(appService, userSvc, signer, m),
		signer:   signer,
		registry: registry,
		db:       gdb,
	}
}

func (e *testEnv) seedUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	digest, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{Username: username, Email: username + "@example.com", PasswordDigest: digest}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) setFlags(t *testing.T, u *model.User, values map[string]any) {
	t.Helper()
	flags := u.Flags.Clone()
	for name, value := range values {
		flags.Set(name, value, fixedNow.Add(-time.Hour))
	}
	if err := e.db.Model(&model.User{}).Where("id = ?", u.ID).UpdateColumn("flags", flags).Error; err != nil {
		t.Fatalf("seed flags: %v", err)
	}
	u.Flags = flags
}

func (e *testEnv) reload(t *testing.T, id uint) *model.User {
	t.Helper()
	var u model.User
	if err := e.db.First(&u, id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &u
}

var bg = context.Background()
