package testutil

import (
	"testing"
)

// RunHCLTest runs the application against a single configuration file.
func RunHCLTest(t *testing.T, src string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.hcl": src}, opts)
}
