package testutils

import "os"

// SavedEnv 环境变量被覆盖前的状态。
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv 设置环境变量并返回原状态，用于 TestMain 这类拿不到 *testing.T 的场景。
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// RestoreEnv 逆序恢复，同一个键被设置多次时回到最初的值。
func RestoreEnv(envs []SavedEnv) {
	for i := len(envs) - 1; i >= 0; i-- {
		env := envs[i]
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
			continue
		}
		_ = os.Unsetenv(env.Key)
	}
}
