package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/internal/cli/testutil"
	"github.com/leapstack-labs/glot/pkg/glot"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0", "glot v0.1.0\n"},
		{"dev", "glot vdev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			res := testutil.Execute(t, NewVersionCommand(tt.version), "")
			require.NoError(t, res.Err)

			banner := fmt.Sprintf("SQL transpiler with %d dialects\n", len(glot.Dialects()))
			assert.Equal(t, tt.want+banner, res.Out)
			assert.Empty(t, res.ErrOut)
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
