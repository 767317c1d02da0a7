package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anssilaukkarinen/bfty/pkg/envelope"
)

const minimalConfig = `
datasets:
  - name: jok2004
    file: jok2004.csv
  - name: van2007
    file: van2007.csv
    title: Helsinki-Vantaa 2007
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestYAMLProviderDefaults(t *testing.T) {
	p := NewYAMLProvider(writeConfig(t, minimalConfig))
	cfg, err := p.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "input", cfg.InputDir)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, DefaultFormats(), cfg.Output.Formats)
	assert.Equal(t, envelope.DefaultConfig(), cfg.Envelope)
	assert.Equal(t, 24, cfg.Indoor.Window)
	assert.Equal(t, 21.0, cfg.Indoor.Temperature)
	assert.False(t, cfg.Indoor.Centered)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.Len(t, cfg.Sites, 2)

	datasets, err := p.GetDatasets()
	require.NoError(t, err)
	require.Len(t, datasets, 2)

	site, err := ResolveSite(cfg.Sites, datasets[0].Name)
	require.NoError(t, err)
	assert.Equal(t, 60.81, site.Latitude)
	assert.Equal(t, "Jokioinen 2004", datasets[0].TitleFor(site))

	site, err = ResolveSite(cfg.Sites, datasets[1].Name)
	require.NoError(t, err)
	assert.Equal(t, 51.0, site.HeightAMSL)
	assert.Equal(t, "Helsinki-Vantaa 2007", datasets[1].TitleFor(site))

	assert.True(t, p.IsReadOnly())
	assert.NoError(t, p.Close())
}

func TestPartialEnvelopeKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
envelope:
  height: 12
  terrain: III
indoor:
  centered: true
`))
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Envelope.Height)
	assert.Equal(t, envelope.TerrainIII, cfg.Envelope.Terrain)
	assert.Equal(t, 180.0, cfg.Envelope.Orientation)
	assert.Equal(t, -30.0, cfg.Envelope.FreezeThreshold)
	assert.Equal(t, envelope.MethodEN1991, cfg.Envelope.PressureMethod)
	assert.True(t, cfg.Indoor.Centered)
	assert.Equal(t, 24, cfg.Indoor.Window)
}

func TestValidateUnknownSite(t *testing.T) {
	_, err := Parse([]byte(`
datasets:
  - name: oulu2010
    file: oulu2010.csv
`))
	assert.ErrorIs(t, err, ErrUnknownSite)
}

func TestValidateUnknownTerrain(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + `
envelope:
  terrain: V
`))
	assert.ErrorIs(t, err, envelope.ErrUnknownTerrain)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	_, err := Parse([]byte(`
datasets:
  - name: jok2004
    file: a.csv
  - name: jok2004
    file: b.csv
indoor:
  window: 0
output:
  formats: [csv, pdf]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "duplicate dataset")
	assert.Contains(t, err.Error(), "indoor window")
	assert.Contains(t, err.Error(), `unknown output format "pdf"`)
}

func TestValidateRejectsLeapReferenceYear(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + `
pipeline:
  reference_year: 2004
`))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvInputDir, "/data/in")
	t.Setenv(EnvOutputDir, "/data/out")
	t.Setenv(EnvWorkers, "4")
	t.Setenv(EnvSQLitePath, "/data/results.db")

	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.Output.Dir)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, "/data/results.db", cfg.Output.SQLitePath)
}

func TestEnvOverrideBadWorkers(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	_, err := Parse([]byte(minimalConfig))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvOutputDir+"=/from/dotenv\n"), 0o644))

	t.Setenv(EnvOutputDir, "")
	os.Unsetenv(EnvOutputDir)

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "/from/dotenv", os.Getenv(EnvOutputDir))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestMissingFile(t *testing.T) {
	_, err := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml")).LoadConfig()
	assert.Error(t, err)
}

func TestHasFormat(t *testing.T) {
	o := OutputData{Formats: []string{FormatCSV, FormatParquet}}
	assert.True(t, o.HasFormat(FormatParquet))
	assert.False(t, o.HasFormat(FormatWUFI))
}
