package service

import (
	"context"
	"testing"
	"time"

	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	modulerepo "stored-image-server/internal/modules/user/repo"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/testutils"
	"stored-image-server/internal/utils"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 5, 6, 19, 59, 16, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	appService := platformservice.NewAppService()
	appService.SetClock(func() time.Time { return fixedNow })
	return New(appService, modulerepo.NewUserRepository(gdb), metrics.New(nil)), gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string, isAdmin bool) *model.User {
	t.Helper()
	digest, err := utils.HashPassword("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{
		Username:       username,
		Email:          username + "@example.com",
		PasswordDigest: digest,
		IsAdmin:        isAdmin,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func reloadUser(t *testing.T, gdb *gorm.DB, id uint) *model.User {
	t.Helper()
	var u model.User
	if err := gdb.First(&u, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &u
}

func strPtr(s string) *string {
	return &s
}

var bg = context.Background()
