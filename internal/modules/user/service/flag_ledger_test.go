package service

import (
	"testing"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"
)

// 测试内容：验证 SetFlag 持久化当前值并追加一条 HISTORY，时间为服务时钟。
func TestSetFlag_PersistsValueAndHistory(t *testing.T) {
	svc, gdb := setupTestService(t)
	u := seedUser(t, gdb, "alice", false)

	if err := svc.SetFlag(bg, u, consts.FlagBanned, true); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if !u.Flags.Enabled(consts.FlagBanned) {
		t.Fatalf("期望内存中的 flags 已更新")
	}

	stored := reloadUser(t, gdb, u.ID)
	if !stored.Flags.Enabled(consts.FlagBanned) {
		t.Fatalf("期望 BANNED 已持久化")
	}
	history := stored.Flags.History()
	if len(history) != 1 {
		t.Fatalf("期望 1 条 HISTORY，实际为 %d", len(history))
	}
	if history[0].Name != consts.FlagBanned || history[0].Value != true {
		t.Fatalf("HISTORY 内容不符合预期: %+v", history[0])
	}
	if history[0].At != fixedNow.Format(model.FlagTimeLayout) {
		t.Fatalf("期望时间戳为 %s，实际为 %s", fixedNow.Format(model.FlagTimeLayout), history[0].At)
	}
}

// 测试内容：验证 ClearFlag 不追加 HISTORY，对不存在的标记是空操作。
func TestClearFlag(t *testing.T) {
	svc, gdb := setupTestService(t)
	u := seedUser(t, gdb, "alice", false)

	if err := svc.ClearFlag(bg, u, "NEVER_SET"); err != nil {
		t.Fatalf("清除不存在的标记不应报错: %v", err)
	}
	if len(reloadUser(t, gdb, u.ID).Flags.History()) != 0 {
		t.Fatalf("清除不存在的标记不应产生 HISTORY")
	}

	if err := svc.SetFlag(bg, u, consts.FlagSuspended, true); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if err := svc.ClearFlag(bg, u, consts.FlagSuspended); err != nil {
		t.Fatalf("ClearFlag: %v", err)
	}
	if err := svc.ClearFlag(bg, u, consts.FlagSuspended); err != nil {
		t.Fatalf("重复清除不应报错: %v", err)
	}

	stored := reloadUser(t, gdb, u.ID)
	if stored.Flags.Has(consts.FlagSuspended) {
		t.Fatalf("期望 SUSPENDED 已清除")
	}
	if len(stored.Flags.History()) != 1 {
		t.Fatalf("期望只有 SetFlag 产生的 1 条 HISTORY，实际为 %d", len(stored.Flags.History()))
	}
}

// 测试内容：验证 SetFlag 不会改动 flags 以外的列。
func TestSetFlag_DoesNotTouchOtherColumns(t *testing.T) {
	svc, gdb := setupTestService(t)
	u := seedUser(t, gdb, "alice", false)
	u.Username = "x"

	if err := svc.SetFlag(bg, u, "NOTE", "hello"); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	stored := reloadUser(t, gdb, u.ID)
	if stored.Username != "alice" {
		t.Fatalf("SetFlag 不应写入其它字段，实际用户名为 %s", stored.Username)
	}
	if stored.Flags.String("NOTE") != "hello" {
		t.Fatalf("期望 NOTE=hello")
	}
}
