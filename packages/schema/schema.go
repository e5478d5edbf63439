// Package schema validates resolved training configurations before they are
// handed to the pipeline. Structural constraints live in an embedded JSON
// schema; cross-field rules that a schema cannot express are checked in Go.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/POE21L/tractconf/packages/bundles"
	"github.com/POE21L/tractconf/packages/core/config"
)

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["exp_name", "exp_type", "num_epochs", "batch_size"],
  "properties": {
    "exp_name": {"type": "string", "minLength": 1},
    "exp_type": {
      "type": "string",
      "enum": ["tract_segmentation", "dm_regression", "endings_segmentation", "peak_regression"]
    },
    "model": {"type": "string", "minLength": 1},
    "classes": {"type": "string", "minLength": 1},
    "num_classes": {"type": "integer", "minimum": 1},
    "resolution": {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?mm$"},
    "labels_type": {"type": "string", "enum": ["int", "float"]},
    "slice_direction": {"type": "string", "enum": ["x", "y", "z"]},
    "num_epochs": {"type": "integer", "minimum": 1},
    "epoch_multiplier": {"type": "integer", "minimum": 1},
    "batch_size": {"type": "integer", "minimum": 1},
    "learning_rate": {"type": "number", "exclusiveMinimum": 0, "maximum": 1},
    "optimizer": {"type": "string", "enum": ["Adamax", "Adam", "SGD"]},
    "loss_function": {
      "type": "string",
      "enum": ["default", "mse", "angle_length", "soft_batch_dice"]
    },
    "weight_decay": {"type": "number", "minimum": 0},
    "unet_filters": {"type": "integer", "minimum": 1},
    "threshold": {"type": "number", "minimum": 0, "maximum": 1},
    "best_epoch_selection": {"type": "string", "enum": ["loss", "f1"]}
  }
}`

// Violation is one failed constraint on a config.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validate checks a resolved config against the embedded schema and the
// semantic rules. It returns the list of violations; an empty list means
// the config is valid.
func Validate(cfg *config.Config) ([]Violation, error) {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var violations []Violation
	for _, e := range result.Errors() {
		violations = append(violations, Violation{Field: e.Field(), Message: e.Description()})
	}

	violations = append(violations, semanticChecks(cfg)...)
	return violations, nil
}

// semanticChecks covers the cross-field rules.
func semanticChecks(cfg *config.Config) []Violation {
	var violations []Violation

	n, err := bundles.Count(cfg.Classes)
	if err != nil {
		violations = append(violations, Violation{Field: "classes", Message: err.Error()})
	} else if cfg.NumClasses != 0 && cfg.NumClasses != n {
		violations = append(violations, Violation{
			Field:   "num_classes",
			Message: fmt.Sprintf("is %d but taxonomy %q has %d classes", cfg.NumClasses, cfg.Classes, n),
		})
	}

	// Per-transform switches are meaningless without the master switch.
	if !cfg.GetDataAugmentation() {
		transforms := []struct {
			field string
			set   *bool
		}{
			{"daug_rotate", cfg.DaugRotate},
			{"daug_mirror", cfg.DaugMirror},
			{"daug_flip_peaks", cfg.DaugFlipPeaks},
			{"daug_resample", cfg.DaugResample},
		}
		for _, t := range transforms {
			field, set := t.field, t.set
			if set != nil && *set {
				violations = append(violations, Violation{
					Field:   field,
					Message: "enabled but data_augmentation is off",
				})
			}
		}
	}

	if cfg.ExpType == "peak_regression" && cfg.LabelsType != "float" {
		violations = append(violations, Violation{
			Field:   "labels_type",
			Message: "peak_regression requires float labels",
		})
	}
	if cfg.ExpType == "dm_regression" && cfg.LabelsType != "float" {
		violations = append(violations, Violation{
			Field:   "labels_type",
			Message: "dm_regression requires float labels",
		})
	}

	return violations
}
