package app

import (
	"os"
	"sync/atomic"
)

// TestModeEnv, when set to "1", makes main return before touching Postgres or the network.
const TestModeEnv = "CONSIGNLY_TEST_MODE"

// 0 = not read yet, 1 = off, 2 = on.
var testMode atomic.Int32

// InTestMode reports whether the application should skip runtime side effects.
// The environment is read on first use and cached.
func InTestMode() bool {
	if v := testMode.Load(); v != 0 {
		return v == 2
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads the environment and returns the new value.
func RefreshTestMode() bool {
	on := os.Getenv(TestModeEnv) == "1"
	if on {
		testMode.Store(2)
	} else {
		testMode.Store(1)
	}
	return on
}
