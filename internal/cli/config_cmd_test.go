package cli

import (
	"os"
	"testing"

	"github.com/Untitled-ITU/nutrify-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvBaseURL, config.EnvToken, config.EnvTimeout} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestConfigSetWritesFile(t *testing.T) {
	homeDir := t.TempDir()
	cmd, out := newTestCmd(t)

	err := runConfigSet(cmd, homeDir, []string{"base_url", "https://nutrify.example.com/api/"}, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "base_url = https://nutrify.example.com/api")

	cfg, err := config.Read(homeDir)
	require.NoError(t, err)
	assert.Equal(t, "https://nutrify.example.com/api", cfg.BaseURL)
}

func TestConfigSetPromptsForValue(t *testing.T) {
	homeDir := t.TempDir()
	cmd, out := newTestCmd(t)

	err := runConfigSet(cmd, homeDir, []string{"token"}, mockPrompt("abcdefghijklmnop"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "token = abcd…mnop")
	assert.NotContains(t, out.String(), "abcdefghijklmnop")

	cfg, err := config.Read(homeDir)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmnop", cfg.Token)
}

func TestConfigSetRejectsBadInput(t *testing.T) {
	homeDir := t.TempDir()
	cmd, _ := newTestCmd(t)

	assert.Error(t, runConfigSet(cmd, homeDir, []string{"colour", "red"}, nil))
	assert.Error(t, runConfigSet(cmd, homeDir, []string{"row_height", "zero"}, nil))
	assert.Error(t, runConfigSet(cmd, homeDir, []string{"timeout"}, nil))

	_, err := os.Stat(config.Path(homeDir))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigGetSingleKey(t *testing.T) {
	clearConfigEnv(t)
	homeDir := t.TempDir()
	require.NoError(t, config.Write(homeDir, &config.Config{RowHeight: 5}))
	cmd, out := newTestCmd(t)

	require.NoError(t, runConfigGet(cmd, homeDir, t.TempDir(), "row_height"))
	assert.Equal(t, "5\n", out.String())
}

func TestConfigGetAllMasksToken(t *testing.T) {
	clearConfigEnv(t)
	homeDir := t.TempDir()
	require.NoError(t, config.Write(homeDir, &config.Config{BaseURL: "http://localhost:5000/api", Token: "secret-token-value"}))
	cmd, out := newTestCmd(t)

	require.NoError(t, runConfigGet(cmd, homeDir, t.TempDir(), ""))

	assert.Contains(t, out.String(), "http://localhost:5000/api")
	assert.Contains(t, out.String(), "secr…alue")
	assert.NotContains(t, out.String(), "secret-token-value")
	assert.Contains(t, out.String(), "(unset)")
}

func TestConfigGetReflectsEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvBaseURL, "http://env.example.com/api")
	homeDir := t.TempDir()
	cmd, out := newTestCmd(t)

	require.NoError(t, runConfigGet(cmd, homeDir, t.TempDir(), "base_url"))
	assert.Equal(t, "http://env.example.com/api\n", out.String())
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "****", maskToken("abcd"))
	assert.Equal(t, "abcd…6789", maskToken("abcdef0123456789"))
}
