package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_HasStandardFileNamesAndRoutingTables(t *testing.T) {
	cfg := Default()
	require.Equal(t, "prices.txt", cfg.Files.Prices)
	require.Equal(t, "marketdata.txt", cfg.Files.MarketData)
	require.Equal(t, "trades.txt", cfg.Files.Trades)
	require.Equal(t, "inquiries.txt", cfg.Files.Inquiries)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingConfigFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/pipeline.yaml")
	require.NoError(t, err)
	require.Equal(t, Default().Files, cfg.Files)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "pipeline-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("files:\n  out_dir: /tmp/custom-out\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := Load(f.Name())
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom-out", cfg.Files.OutDir)
}

func TestLoad_EnvOverridesWinOverYAML(t *testing.T) {
	f := t.TempDir() + "/pipeline.yaml"
	require.NoError(t, os.WriteFile(f, []byte("files:\n  out_dir: /tmp/yaml-out\n"), 0644))

	t.Setenv("PIPELINE_OUT_DIR", "/tmp/env-out")
	cfg, err := Load(f)
	require.NoError(t, err)
	require.Equal(t, "/tmp/env-out", cfg.Files.OutDir)
}

func TestValidate_RejectsEmptyRoutingTables(t *testing.T) {
	cfg := Default()
	cfg.Routing.Markets = nil
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsNegativeGUIThrottle(t *testing.T) {
	cfg := Default()
	cfg.GUI.MaxPrints = -1
	require.Error(t, cfg.Validate())
}
