package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"stored-image-server/internal/consts"
)

// FlagTimeLayout 标记值与历史时间戳统一使用的时间格式。
const FlagTimeLayout = time.RFC3339Nano

// FlagEntry 是 HISTORY 中的一条记录，序列化为 {"NAME": [value, at]}。
type FlagEntry struct {
	Name  string
	Value any
	At    string
}

func (e FlagEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][2]any{e.Name: {e.Value, e.At}})
}

func (e *FlagEntry) UnmarshalJSON(data []byte) error {
	var raw map[string][]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("history entry must have exactly one key, got %d", len(raw))
	}
	for name, pair := range raw {
		if len(pair) != 2 {
			return fmt.Errorf("history entry %q must be [value, at]", name)
		}
		at, ok := pair[1].(string)
		if !ok {
			return fmt.Errorf("history entry %q timestamp must be a string", name)
		}
		e.Name = name
		e.Value = pair[0]
		e.At = at
	}
	return nil
}

// Flags 账号标记账本：当前值 + 只追加的 HISTORY。
// 以 JSON 文本列持久化，零值序列化为 {"HISTORY":[]}。
type Flags struct {
	values  map[string]any
	history []FlagEntry
}

// Set 写入当前值并追加一条历史记录，不持久化。
// time.Time 类型的值会被规范化为字符串。
func (f *Flags) Set(name string, value any, at time.Time) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	v := normalizeFlagValue(value)
	f.values[name] = v
	f.history = append(f.history, FlagEntry{Name: name, Value: v, At: at.UTC().Format(FlagTimeLayout)})
}

// Clear 删除当前值，不写历史。返回是否确实删除了值。
func (f *Flags) Clear(name string) bool {
	if _, ok := f.values[name]; !ok {
		return false
	}
	delete(f.values, name)
	return true
}

func (f Flags) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f Flags) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Enabled 判断布尔型标记是否开启，兼容 "true" 字符串。
func (f Flags) Enabled(name string) bool {
	switch v := f.values[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Time 读取时间型标记。
func (f Flags) Time(name string) (time.Time, bool) {
	s, ok := f.values[name].(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{FlagTimeLayout, time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f Flags) String(name string) string {
	s, _ := f.values[name].(string)
	return s
}

// Names 返回当前值的名称，按字典序。
func (f Flags) Names() []string {
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// History 返回历史记录的副本。
func (f Flags) History() []FlagEntry {
	out := make([]FlagEntry, len(f.history))
	copy(out, f.history)
	return out
}

// Clone 深拷贝，批量修改在副本上进行。
func (f Flags) Clone() Flags {
	out := Flags{history: f.History()}
	if f.values != nil {
		out.values = make(map[string]any, len(f.values))
		for k, v := range f.values {
			out.values[k] = v
		}
	}
	return out
}

func (f Flags) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(f.values)+1)
	for k, v := range f.values {
		doc[k] = v
	}
	history := f.history
	if history == nil {
		history = []FlagEntry{}
	}
	doc[consts.FlagHistory] = history
	return json.Marshal(doc)
}

func (f *Flags) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.values = make(map[string]any, len(raw))
	f.history = nil
	for k, v := range raw {
		if k == consts.FlagHistory {
			if err := json.Unmarshal(v, &f.history); err != nil {
				return fmt.Errorf("decode flag history: %w", err)
			}
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("decode flag %q: %w", k, err)
		}
		f.values[k] = val
	}
	return nil
}

// Value 实现 driver.Valuer。
func (f Flags) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner。
func (f *Flags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = Flags{}
		return nil
	case []byte:
		if len(v) == 0 {
			*f = Flags{}
			return nil
		}
		return f.UnmarshalJSON(v)
	case string:
		if v == "" {
			*f = Flags{}
			return nil
		}
		return f.UnmarshalJSON([]byte(v))
	default:
		return errors.New("unsupported flags column type")
	}
}

// GormDataType 让 gorm 在各方言下都使用文本列。
func (Flags) GormDataType() string {
	return "text"
}

func normalizeFlagValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(FlagTimeLayout)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(FlagTimeLayout)
	default:
		return v
	}
}
