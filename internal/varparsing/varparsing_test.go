package varparsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		expected  Options
		expectErr error
	}{
		{
			name:     "defaults",
			expected: Options{InputMC: DefaultInputMC, Events: 100},
		},
		{
			name:     "both options",
			args:     []string{"inputMC=samples/noPU.txt", "Events=10"},
			expected: Options{InputMC: "samples/noPU.txt", Events: 10},
		},
		{
			name:     "all events",
			args:     []string{"Events=-1"},
			expected: Options{InputMC: DefaultInputMC, Events: -1},
		},
		{
			name:     "value containing equals sign",
			args:     []string{"inputMC=a=b.txt"},
			expected: Options{InputMC: "a=b.txt", Events: 100},
		},
		{name: "unknown key", args: []string{"maxEvents=5"}, expectErr: ErrUnknownOption},
		{name: "wrong case", args: []string{"events=5"}, expectErr: ErrUnknownOption},
		{name: "non integer events", args: []string{"Events=ten"}, expectErr: ErrInvalidOption},
		{name: "events below minus one", args: []string{"Events=-2"}, expectErr: ErrInvalidOption},
		{name: "empty input", args: []string{"inputMC="}, expectErr: ErrInvalidOption},
		{name: "repeated", args: []string{"Events=1", "Events=2"}, expectErr: ErrInvalidOption},
		{name: "not key value", args: []string{"Events"}, expectErr: ErrInvalidOption},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := Parse(tc.args)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, opts)
		})
	}
}

func TestIsOption(t *testing.T) {
	assert.True(t, IsOption("Events=5"))
	assert.True(t, IsOption("inputMC=x"))
	assert.True(t, IsOption("bogus=1"))
	assert.False(t, IsOption("configs/demo.hcl"))
	assert.False(t, IsOption("./dir=odd/file.hcl"))
	assert.False(t, IsOption("=5"))
}
