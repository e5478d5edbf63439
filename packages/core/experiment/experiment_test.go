package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/POE21L/tractconf/packages/core/config"
)

const dmRegExperiment = `# Density map regression with augmentation enabled.
base: dm_regression

gradient_scheme: 12g90g270g
resolution: 1.25mm

num_epochs: 500
data_augmentation: true

# model: UNet_DeepSup
# classes: AutoPTX
`

func writeExperiment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"DmReg_12g90g270g_125mm_DAugAll.yaml", "DmReg_12g90g270g_125mm_DAugAll"},
		{"/some/dir/TractSeg_All_125mm.yml", "TractSeg_All_125mm"},
		{"Foo.local.yaml", "Foo"},
		{"bare", "bare"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.path))
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "DmReg_12g90g270g_125mm_DAugAll.yaml", dmRegExperiment)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DmReg_12g90g270g_125mm_DAugAll", f.Name)
	assert.Equal(t, "dm_regression", f.Base)

	cfg, err := f.Resolve()
	require.NoError(t, err)

	// the overrides
	assert.Equal(t, "DmReg_12g90g270g_125mm_DAugAll", cfg.ExpName)
	assert.Equal(t, 500, cfg.NumEpochs)
	assert.True(t, cfg.GetDataAugmentation())

	// everything else inherits from the dm_regression preset
	preset, err := config.Preset("dm_regression")
	require.NoError(t, err)
	assert.Equal(t, preset.LossFunction, cfg.LossFunction)
	assert.Equal(t, preset.LabelsType, cfg.LabelsType)
	assert.Equal(t, preset.BatchSize, cfg.BatchSize)
	assert.Equal(t, preset.Optimizer, cfg.Optimizer)
	assert.Equal(t, preset.Threshold, cfg.Threshold)

	// class count derived from the taxonomy
	assert.Equal(t, 72, cfg.NumClasses)

	// commented-out variant stays dormant
	assert.Equal(t, preset.Model, cfg.Model)
	assert.Equal(t, "All", cfg.Classes)
}

func TestResolveDeterministic(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "DmReg_12g90g270g_125mm_DAugAll.yaml", dmRegExperiment)

	f1, err := Load(path)
	require.NoError(t, err)
	cfg1, err := f1.Resolve()
	require.NoError(t, err)

	f2, err := Load(path)
	require.NoError(t, err)
	cfg2, err := f2.Resolve()
	require.NoError(t, err)

	assert.Equal(t, cfg1, cfg2)
}

func TestLoadDefaultBase(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "Minimal.yaml", "num_epochs: 10\n")

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tract_seg", f.Base)

	cfg, err := f.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.NumEpochs)
	assert.Equal(t, "tract_segmentation", cfg.ExpType)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "Inherit_everything.yaml", "# nothing overridden\n")

	f, err := Load(path)
	require.NoError(t, err)

	cfg, err := f.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Inherit_everything", cfg.ExpName)
	assert.Equal(t, 250, cfg.NumEpochs)
}

func TestLoadRejectsExplicitName(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "Sneaky.yaml", "exp_name: Other\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExplicitName)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "Typo.yaml", "num_epoches: 500\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveUnknownPreset(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "Bad.yaml", "base: nope\n")

	f, err := Load(path)
	require.NoError(t, err)
	_, err = f.Resolve()
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeExperiment(t, dir, "B_second.yaml", "num_epochs: 2\n")
	writeExperiment(t, dir, "A_first.yaml", "num_epochs: 1\n")
	writeExperiment(t, dir, "notes.txt", "not an experiment")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	files, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A_first", files[0].Name)
	assert.Equal(t, "B_second", files[1].Name)
}

func TestOverriddenFields(t *testing.T) {
	path := writeExperiment(t, t.TempDir(), "DmReg_12g90g270g_125mm_DAugAll.yaml", dmRegExperiment)

	f, err := Load(path)
	require.NoError(t, err)

	fields := f.OverriddenFields()
	assert.True(t, fields["NumEpochs"])
	assert.True(t, fields["DataAugmentation"])
	assert.True(t, fields["GradientScheme"])
	assert.True(t, fields["Resolution"])
	assert.False(t, fields["BatchSize"])
	assert.False(t, fields["Model"])
}
