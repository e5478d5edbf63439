package config

import (
	"fmt"
	"sort"
)

// presets are the built-in base variants an experiment file can name with
// its `base:` key. Each entry is a sparse override applied on top of
// DefaultConfig; fields left zero inherit the default.
var presets = map[string]*Config{
	// Plain multi-label tract segmentation, identical to the defaults.
	"tract_seg": {},

	// Density map regression: per-voxel float targets instead of labels.
	"dm_regression": {
		ExpType:      "dm_regression",
		LabelsType:   "float",
		LossFunction: "mse",
		Threshold:    0.01,
		MetricTypes:  []string{"loss"},
	},

	// Start/end region segmentation of each bundle.
	"endings_seg": {
		ExpType:     "endings_segmentation",
		NumEpochs:   150,
		MetricTypes: []string{"loss", "f1_macro"},
	},

	// Per-bundle peak regression; angle-aware loss over float targets.
	"peak_reg": {
		ExpType:      "peak_regression",
		LabelsType:   "float",
		LossFunction: "angle_length",
		BatchSize:    44,
		NumEpochs:    250,
		MetricTypes:  []string{"loss", "angle_error"},
	},
}

// Preset returns the effective config for a named base preset, i.e. the
// defaults with the preset's overrides applied.
func Preset(name string) (*Config, error) {
	override, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown base preset: %q (known: %v)", name, PresetNames())
	}
	return DefaultConfig().Merge(override), nil
}

// PresetNames lists the available base presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
