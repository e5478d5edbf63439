// Package config defines the training configuration model for tractconf.
//
// It provides functionality for:
//   - The full set of training hyperparameters with their defaults
//   - Built-in base presets (tract_seg, dm_regression, endings_seg, peak_reg)
//   - Override-wins merging of sparse configs onto a parent
package config
