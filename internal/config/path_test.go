package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("RISKLINE_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"absolute unchanged", "/etc/riskline.yaml", "/etc/riskline.yaml"},
		{"tilde prefix", "~/artifacts", filepath.Join(home, "artifacts")},
		{"bare tilde", "~", home},
		{"env var", "$RISKLINE_TEST_DIR/batches", "/var/data/batches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", DatabasePath("/tmp/custom.db"))
	assert.Equal(t, filepath.Join(home, ".local/share/riskline/riskline.db"), DatabasePath(""))
}

func TestArtifactsDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models"), ArtifactsDir("~/models"))
	assert.Equal(t, filepath.Join(home, ".local/share/riskline/artifacts"), ArtifactsDir(""))
}
