package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/hcl"
)

// AssertLogged checks that the log output of a run contains msg.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.LogOutput, msg),
		"expected %q in log output:\n%s", msg, result.LogOutput,
	)
}

// DecodeOutput parses the HCL output of a run back into a model.
func DecodeOutput(t *testing.T, result *HarnessResult) *config.Model {
	t.Helper()
	require.NoError(t, result.Err)
	model, err := hcl.Decode(context.Background(), []byte(result.Output), "output.hcl")
	require.NoError(t, err, "output is not valid configuration:\n%s", result.Output)
	return model
}
