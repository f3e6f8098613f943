package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证零值账本序列化为只含空 HISTORY 的文档。
func TestFlags_ZeroValueJSON(t *testing.T) {
	var f Flags
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"HISTORY":[]}`, string(b))

	v, err := f.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"HISTORY":[]}`, v.(string))
}

// 测试内容：验证 Set 写入当前值并追加一条历史，时间值被规范化为字符串。
func TestFlags_SetAppendsHistory(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var f Flags
	f.Set("TEST_FLAG", true, at)
	f.Set("LAST_LOGIN", at, at)

	assert.True(t, f.Enabled("TEST_FLAG"))
	got, ok := f.Get("LAST_LOGIN")
	require.True(t, ok)
	assert.Equal(t, at.Format(FlagTimeLayout), got)

	history := f.History()
	require.Len(t, history, 2)
	assert.Equal(t, FlagEntry{Name: "TEST_FLAG", Value: true, At: at.Format(FlagTimeLayout)}, history[0])
	assert.Equal(t, "LAST_LOGIN", history[1].Name)
	assert.Equal(t, history[1].At, history[1].Value)
}

// 测试内容：验证 Clear 删除当前值但不改动历史，对不存在的标记是无操作。
func TestFlags_ClearKeepsHistory(t *testing.T) {
	at := time.Now()
	var f Flags
	f.Set("TEST_FLAG", "true", at)

	assert.True(t, f.Clear("TEST_FLAG"))
	assert.False(t, f.Has("TEST_FLAG"))
	assert.Len(t, f.History(), 1)

	assert.False(t, f.Clear("TEST_FLAG"))
	assert.False(t, f.Clear("NEVER_SET"))
	assert.Len(t, f.History(), 1)
}

// 测试内容：验证序列化形状为当前值平铺 + HISTORY 条目 {"NAME":[value, at]}，且可以往返。
func TestFlags_JSONShapeRoundTrip(t *testing.T) {
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	var f Flags
	f.Set("BANNED", true, at)
	f.Set("DELETE", "alice", at)
	f.Clear("BANNED")

	b, err := json.Marshal(f)
	require.NoError(t, err)

	stamp := at.Format(FlagTimeLayout)
	assert.JSONEq(t, `{
		"DELETE": "alice",
		"HISTORY": [
			{"BANNED": [true, "`+stamp+`"]},
			{"DELETE": ["alice", "`+stamp+`"]}
		]
	}`, string(b))

	var decoded Flags
	require.NoError(t, decoded.Scan(b))
	assert.Equal(t, "alice", decoded.String("DELETE"))
	assert.False(t, decoded.Has("BANNED"))
	assert.Equal(t, f.History(), decoded.History())
}

// 测试内容：验证 Clone 得到的副本修改不影响原账本。
func TestFlags_CloneIsIndependent(t *testing.T) {
	at := time.Now()
	var f Flags
	f.Set("A", true, at)

	c := f.Clone()
	c.Set("B", true, at)
	c.Clear("A")

	assert.True(t, f.Has("A"))
	assert.False(t, f.Has("B"))
	assert.Len(t, f.History(), 1)
	assert.Len(t, c.History(), 2)
}

// 测试内容：验证时间型标记可以按多种格式解析。
func TestFlags_TimeParsing(t *testing.T) {
	at := time.Now()
	var f Flags
	f.Set("SUSPENSION_CLEAR_DATE", "2030-01-01T00:00:00Z", at)
	f.Set("OTHER", "2030-01-01", at)
	f.Set("BROKEN", "soon", at)

	got, ok := f.Time("SUSPENSION_CLEAR_DATE")
	require.True(t, ok)
	assert.Equal(t, 2030, got.Year())

	_, ok = f.Time("OTHER")
	assert.True(t, ok)

	_, ok = f.Time("BROKEN")
	assert.False(t, ok)
	_, ok = f.Time("MISSING")
	assert.False(t, ok)
}

// 测试内容：验证空列值与 NULL 扫描为零值账本。
func TestFlags_ScanEmpty(t *testing.T) {
	var f Flags
	require.NoError(t, f.Scan(nil))
	require.NoError(t, f.Scan(""))
	require.NoError(t, f.Scan([]byte{}))
	assert.Empty(t, f.Names())
	assert.Error(t, f.Scan(42))
}
