package service

import (
	"fmt"
	"testing"
	"time"
)

// 测试内容：验证包装后的 ServiceError 仍可被识别并保留全部信息。
func TestAsServiceError_Wrapped(t *testing.T) {
	base := NewValidationError("Username can't be blank", "Email is invalid")
	wrapped := fmt.Errorf("signup: %w", base)

	serviceErr, ok := AsServiceError(wrapped)
	if !ok {
		t.Fatalf("期望识别为 ServiceError")
	}
	if serviceErr.Code != ErrorCodeValidation {
		t.Fatalf("期望 validation，实际为 %s", serviceErr.Code)
	}
	if len(serviceErr.Messages) != 2 {
		t.Fatalf("期望 2 条信息，实际为 %d", len(serviceErr.Messages))
	}
	if serviceErr.Error() != "Username can't be blank; Email is invalid" {
		t.Fatalf("Error() 拼接不符合预期: %q", serviceErr.Error())
	}
}

// 测试内容：验证 HasCode 对普通错误返回 false。
func TestHasCode(t *testing.T) {
	if HasCode(fmt.Errorf("plain"), ErrorCodeInternal) {
		t.Fatalf("普通错误不应匹配任何错误码")
	}
	if !HasCode(NewForbiddenError("Delete action forbidden"), ErrorCodeForbidden) {
		t.Fatalf("期望匹配 forbidden")
	}
}

// 测试内容：验证 SetClock 可以固定时间，传入 nil 恢复系统时钟。
func TestAppService_SetClock(t *testing.T) {
	svc := NewAppService()
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return fixed })
	if !svc.Now().Equal(fixed) {
		t.Fatalf("期望固定时间 %v，实际为 %v", fixed, svc.Now())
	}
	svc.SetClock(nil)
	if svc.Now().Equal(fixed) {
		t.Fatalf("期望恢复系统时钟")
	}
}
