package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/config"
)

func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 1280, cfg.ViewportWidth)
	assert.Equal(t, 11, cfg.GrowthMultiplier)
	assert.True(t, cfg.BehaviorEnabled("scroller"))
	assert.True(t, cfg.BehaviorEnabled("sticky-header"))
	assert.False(t, cfg.BehaviorEnabled("nope"))
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolateConfigDir(t)

	cfg, used, err := config.LoadMerged(config.Options{
		IgnoreConfig:     true,
		Output:           "out",
		ViewportWidth:    375,
		GrowthMultiplier: 3,
		Behaviors:        []string{"scroller"},
		Debug:            true,
	})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, 375, cfg.ViewportWidth)
	assert.Equal(t, 3, cfg.GrowthMultiplier)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.BehaviorEnabled("scroller"))
	assert.False(t, cfg.BehaviorEnabled("accordion"))
	assert.Equal(t, 4, cfg.Workers, "unset flags keep defaults")
}

func TestLoadMergedFlagsWinOverProfile(t *testing.T) {
	isolateConfigDir(t)

	path, err := config.InitDefaultProfile()
	require.NoError(t, err)

	stored := config.DefaultConfig()
	stored.ViewportWidth = 1440
	stored.ShopHost = "freshwater-demo.myshopify.com"
	require.NoError(t, config.SaveYAML(stored, path))

	cfg, used, err := config.LoadMerged(config.Options{ViewportWidth: 375})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 375, cfg.ViewportWidth, "flag beats profile")
	assert.Equal(t, "freshwater-demo.myshopify.com", cfg.ShopHost, "profile survives where no flag set")
}

func TestProfileLifecycle(t *testing.T) {
	isolateConfigDir(t)

	_, err := config.InitDefaultProfile()
	require.NoError(t, err)

	_, err = config.CreateEmptyProfile("staging")
	require.NoError(t, err)

	require.NoError(t, config.SwitchProfile("staging"))
	label, err := config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "staging", label)

	infos, err := config.ListProfiles()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Default", infos[0].Label)
	assert.False(t, infos[0].Active)
	assert.Equal(t, "staging", infos[1].Label)
	assert.True(t, infos[1].Active)

	require.NoError(t, config.RenameProfile("staging", "prod"))
	label, err = config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "prod", label, "active label follows rename")

	// Removing the active profile falls back to Default.
	require.NoError(t, config.RemoveProfile("prod", false))
	label, err = config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	assert.Error(t, config.RemoveProfile("Default", false))
}

func TestCurrentLabelWithoutSelection(t *testing.T) {
	isolateConfigDir(t)

	_, err := config.CurrentLabel()
	assert.ErrorIs(t, err, config.ErrNoProfile)
}

func TestSaveAndReloadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")

	cfg := config.DefaultConfig()
	cfg.Output = "./dist"
	cfg.KeepTmp = true
	require.NoError(t, config.SaveYAML(cfg, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "growth_multiplier: 11")
	assert.Contains(t, string(raw), "keep_tmp: true")
}
