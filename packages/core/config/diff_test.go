package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig().Merge(&Config{
		NumEpochs:        500,
		DataAugmentation: BoolPtr(true),
	})

	diffs := Diff(a, b)
	require.Len(t, diffs, 2)

	assert.Equal(t, "NumEpochs", diffs[0].Field)
	assert.Equal(t, "250", diffs[0].A)
	assert.Equal(t, "500", diffs[0].B)

	assert.Equal(t, "DataAugmentation", diffs[1].Field)
	assert.Equal(t, "false", diffs[1].A)
	assert.Equal(t, "true", diffs[1].B)
}

func TestDiffIdentical(t *testing.T) {
	assert.Empty(t, Diff(DefaultConfig(), DefaultConfig()))
}

func TestDiffUnsetBoolRendersDash(t *testing.T) {
	diffs := Diff(&Config{}, &Config{DataAugmentation: BoolPtr(false)})
	require.Len(t, diffs, 1)
	assert.Equal(t, "-", diffs[0].A)
	assert.Equal(t, "false", diffs[0].B)
}
