package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[rules]
stolen_lifespan = 50
reputation_sign = -1

[simulation]
poll_rate = "10ms"
`))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Rules.StolenLifespan)
	assert.Equal(t, -1, cfg.Rules.ReputationSign)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.PollRate)
	assert.Equal(t, 30.0, cfg.Rules.BeelineThreshold)
	assert.Equal(t, "sim_savegame_v1", cfg.Storage.SaveSlot)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"backend":  "[storage]\nbackend = \"redis\"\n",
		"sign":     "[rules]\nreputation_sign = 2\n",
		"max load": "[rules]\nmax_load = 0.0\n",
		"map":      "[simulation]\nmap_width = 2\n",
		"syntax":   "[rules\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}
