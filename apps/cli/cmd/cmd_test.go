package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const experimentsDir = "../../../experiments"

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestShowCommandJSON(t *testing.T) {
	noColorFlag = true
	showOutputFlag = "json"
	showSetFlag = nil
	defer func() { showOutputFlag = "console" }()

	cmd, buf := newTestCmd()
	err := showCommand(cmd, []string{filepath.Join(experimentsDir, "DmReg_12g90g270g_125mm_DAugAll.yaml")})
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cfg))
	assert.Equal(t, "DmReg_12g90g270g_125mm_DAugAll", cfg["exp_name"])
	assert.Equal(t, float64(500), cfg["num_epochs"])
	assert.Equal(t, true, cfg["data_augmentation"])
	assert.Equal(t, "dm_regression", cfg["exp_type"])
}

func TestListCommand(t *testing.T) {
	cmd, buf := newTestCmd()
	err := listCommand(cmd, []string{experimentsDir})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DmReg_12g90g270g_125mm_DAugAll")
	assert.Contains(t, out, "base=dm_regression")
	assert.Contains(t, out, "TractSeg_All_125mm")
	assert.Contains(t, out, "PeakReg_12g90g270g_125mm")
}

func TestValidateCommandShippedExperiments(t *testing.T) {
	noColorFlag = true

	cmd, _ := newTestCmd()
	err := validateCommand(cmd, []string{experimentsDir})
	assert.NoError(t, err)
}

func TestDiffCommand(t *testing.T) {
	noColorFlag = true

	cmd, buf := newTestCmd()
	err := diffCommand(cmd, []string{
		filepath.Join(experimentsDir, "TractSeg_All_125mm.yaml"),
		filepath.Join(experimentsDir, "DmReg_12g90g270g_125mm_DAugAll.yaml"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NumEpochs")
	assert.Contains(t, out, "250 -> 500")
	assert.Contains(t, out, "ExpType")
}

func TestInitCommand(t *testing.T) {
	initDirFlag = t.TempDir()
	initBaseFlag = "dm_regression"
	initForceFlag = false
	initModelVariantFlag = true
	defer func() {
		initDirFlag = "."
		initBaseFlag = "tract_seg"
		initModelVariantFlag = false
	}()

	cmd, buf := newTestCmd()
	require.NoError(t, initCommand(cmd, []string{"DmReg_new"}))
	assert.Contains(t, buf.String(), "DmReg_new.yaml")

	// refuses to overwrite without --force
	cmd2, _ := newTestCmd()
	assert.Error(t, initCommand(cmd2, []string{"DmReg_new"}))

	// rejects names carrying an extension
	cmd3, _ := newTestCmd()
	assert.Error(t, initCommand(cmd3, []string{"DmReg_new.yaml"}))
}
