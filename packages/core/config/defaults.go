package config

// DefaultConfig returns the base configuration every preset and experiment
// builds on. Values mirror the reference tract segmentation setup on HCP
// data at 1.25mm.
func DefaultConfig() *Config {
	return &Config{
		ExpType:        "tract_segmentation",
		Model:          "UNet",
		Classes:        "All",
		Dataset:        "HCP",
		GradientScheme: "270g",
		Resolution:     "1.25mm",
		FeaturesType:   "peaks",
		LabelsType:     "int",
		SliceDirection: "y",

		NumEpochs:       250,
		EpochMultiplier: 1,
		BatchSize:       47,
		LearningRate:    0.001,
		LRSchedule:      BoolPtr(true),
		LRScheduleMode:  "min",
		Optimizer:       "Adamax",
		LossFunction:    "default",
		WeightDecay:     0,
		BatchNorm:       BoolPtr(false),
		Dropout:         BoolPtr(false),
		UnetFilters:     64,
		Threshold:       0.5,

		NormalizeData:      BoolPtr(true),
		BestEpochSelection: "loss",
		MetricTypes:        []string{"loss", "f1_macro"},

		// Augmentation is off by default; the per-transform switches are on
		// so enabling the master switch turns on the full set.
		DataAugmentation:  BoolPtr(false),
		DaugScale:         BoolPtr(true),
		DaugNoise:         BoolPtr(true),
		DaugElasticDeform: BoolPtr(true),
		DaugRotate:        BoolPtr(false),
		DaugMirror:        BoolPtr(false),
		DaugFlipPeaks:     BoolPtr(false),
		DaugResample:      BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults on the fields
// callers commonly tweak.
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.ExpType == defaults.ExpType &&
		c.Model == defaults.Model &&
		c.Classes == defaults.Classes &&
		c.NumEpochs == defaults.NumEpochs &&
		c.BatchSize == defaults.BatchSize &&
		c.LearningRate == defaults.LearningRate &&
		c.LossFunction == defaults.LossFunction &&
		c.GetDataAugmentation() == defaults.GetDataAugmentation()
}
