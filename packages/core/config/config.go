package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Config holds every training option the pipeline reads. An experiment file
// only ever sets a subset; the rest is inherited from the defaults and the
// selected base preset.
type Config struct {
	ExpName        string `yaml:"exp_name,omitempty" json:"exp_name,omitempty"`
	ExpType        string `yaml:"exp_type,omitempty" json:"exp_type,omitempty"`
	Model          string `yaml:"model,omitempty" json:"model,omitempty"`
	Classes        string `yaml:"classes,omitempty" json:"classes,omitempty"`
	NumClasses     int    `yaml:"num_classes,omitempty" json:"num_classes,omitempty"`
	Dataset        string `yaml:"dataset,omitempty" json:"dataset,omitempty"`
	GradientScheme string `yaml:"gradient_scheme,omitempty" json:"gradient_scheme,omitempty"`
	Resolution     string `yaml:"resolution,omitempty" json:"resolution,omitempty"`
	FeaturesType   string `yaml:"features_type,omitempty" json:"features_type,omitempty"`
	LabelsType     string `yaml:"labels_type,omitempty" json:"labels_type,omitempty"`
	SliceDirection string `yaml:"slice_direction,omitempty" json:"slice_direction,omitempty"`

	NumEpochs       int     `yaml:"num_epochs,omitempty" json:"num_epochs,omitempty"`
	EpochMultiplier int     `yaml:"epoch_multiplier,omitempty" json:"epoch_multiplier,omitempty"`
	BatchSize       int     `yaml:"batch_size,omitempty" json:"batch_size,omitempty"`
	LearningRate    float64 `yaml:"learning_rate,omitempty" json:"learning_rate,omitempty"`
	LRSchedule      *bool   `yaml:"lr_schedule,omitempty" json:"lr_schedule,omitempty"`
	LRScheduleMode  string  `yaml:"lr_schedule_mode,omitempty" json:"lr_schedule_mode,omitempty"`
	Optimizer       string  `yaml:"optimizer,omitempty" json:"optimizer,omitempty"`
	LossFunction    string  `yaml:"loss_function,omitempty" json:"loss_function,omitempty"`
	WeightDecay     float64 `yaml:"weight_decay,omitempty" json:"weight_decay,omitempty"`
	BatchNorm       *bool   `yaml:"batch_norm,omitempty" json:"batch_norm,omitempty"`
	Dropout         *bool   `yaml:"dropout,omitempty" json:"dropout,omitempty"`
	UnetFilters     int     `yaml:"unet_filters,omitempty" json:"unet_filters,omitempty"`
	Threshold       float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`

	NormalizeData      *bool    `yaml:"normalize_data,omitempty" json:"normalize_data,omitempty"`
	BestEpochSelection string   `yaml:"best_epoch_selection,omitempty" json:"best_epoch_selection,omitempty"`
	MetricTypes        []string `yaml:"metric_types,omitempty" json:"metric_types,omitempty"`

	DataAugmentation  *bool `yaml:"data_augmentation,omitempty" json:"data_augmentation,omitempty"`
	DaugScale         *bool `yaml:"daug_scale,omitempty" json:"daug_scale,omitempty"`
	DaugNoise         *bool `yaml:"daug_noise,omitempty" json:"daug_noise,omitempty"`
	DaugElasticDeform *bool `yaml:"daug_elastic_deform,omitempty" json:"daug_elastic_deform,omitempty"`
	DaugRotate        *bool `yaml:"daug_rotate,omitempty" json:"daug_rotate,omitempty"`
	DaugMirror        *bool `yaml:"daug_mirror,omitempty" json:"daug_mirror,omitempty"`
	DaugFlipPeaks     *bool `yaml:"daug_flip_peaks,omitempty" json:"daug_flip_peaks,omitempty"`
	DaugResample      *bool `yaml:"daug_resample,omitempty" json:"daug_resample,omitempty"`
}

// BoolPtr returns a pointer to a bool value, for building overrides in code.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetDataAugmentation returns the augmentation master switch, defaulting to false
func (c *Config) GetDataAugmentation() bool {
	return getBool(c.DataAugmentation, false)
}

// GetBatchNorm returns the batch norm setting, defaulting to false
func (c *Config) GetBatchNorm() bool {
	return getBool(c.BatchNorm, false)
}

// GetDropout returns the dropout setting, defaulting to false
func (c *Config) GetDropout() bool {
	return getBool(c.Dropout, false)
}

// GetNormalizeData returns the normalization setting, defaulting to true
func (c *Config) GetNormalizeData() bool {
	return getBool(c.NormalizeData, true)
}

// GetLRSchedule returns the LR schedule switch, defaulting to true
func (c *Config) GetLRSchedule() bool {
	return getBool(c.LRSchedule, true)
}

// Merge merges another config into this one, with other taking precedence.
// Zero-valued fields in other mean "inherit"; *bool fields distinguish an
// explicit false from unset.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.ExpName != "" {
		result.ExpName = other.ExpName
	}
	if other.ExpType != "" {
		result.ExpType = other.ExpType
	}
	if other.Model != "" {
		result.Model = other.Model
	}
	if other.Classes != "" {
		result.Classes = other.Classes
	}
	if other.NumClasses > 0 {
		result.NumClasses = other.NumClasses
	}
	if other.Dataset != "" {
		result.Dataset = other.Dataset
	}
	if other.GradientScheme != "" {
		result.GradientScheme = other.GradientScheme
	}
	if other.Resolution != "" {
		result.Resolution = other.Resolution
	}
	if other.FeaturesType != "" {
		result.FeaturesType = other.FeaturesType
	}
	if other.LabelsType != "" {
		result.LabelsType = other.LabelsType
	}
	if other.SliceDirection != "" {
		result.SliceDirection = other.SliceDirection
	}
	if other.NumEpochs > 0 {
		result.NumEpochs = other.NumEpochs
	}
	if other.EpochMultiplier > 0 {
		result.EpochMultiplier = other.EpochMultiplier
	}
	if other.BatchSize > 0 {
		result.BatchSize = other.BatchSize
	}
	if other.LearningRate > 0 {
		result.LearningRate = other.LearningRate
	}
	if other.LRScheduleMode != "" {
		result.LRScheduleMode = other.LRScheduleMode
	}
	if other.Optimizer != "" {
		result.Optimizer = other.Optimizer
	}
	if other.LossFunction != "" {
		result.LossFunction = other.LossFunction
	}
	if other.WeightDecay > 0 {
		result.WeightDecay = other.WeightDecay
	}
	if other.UnetFilters > 0 {
		result.UnetFilters = other.UnetFilters
	}
	if other.Threshold > 0 {
		result.Threshold = other.Threshold
	}
	if other.BestEpochSelection != "" {
		result.BestEpochSelection = other.BestEpochSelection
	}

	// Boolean switches - only override if explicitly set in other config
	if other.LRSchedule != nil {
		result.LRSchedule = other.LRSchedule
	}
	if other.BatchNorm != nil {
		result.BatchNorm = other.BatchNorm
	}
	if other.Dropout != nil {
		result.Dropout = other.Dropout
	}
	if other.NormalizeData != nil {
		result.NormalizeData = other.NormalizeData
	}
	if other.DataAugmentation != nil {
		result.DataAugmentation = other.DataAugmentation
	}
	if other.DaugScale != nil {
		result.DaugScale = other.DaugScale
	}
	if other.DaugNoise != nil {
		result.DaugNoise = other.DaugNoise
	}
	if other.DaugElasticDeform != nil {
		result.DaugElasticDeform = other.DaugElasticDeform
	}
	if other.DaugRotate != nil {
		result.DaugRotate = other.DaugRotate
	}
	if other.DaugMirror != nil {
		result.DaugMirror = other.DaugMirror
	}
	if other.DaugFlipPeaks != nil {
		result.DaugFlipPeaks = other.DaugFlipPeaks
	}
	if other.DaugResample != nil {
		result.DaugResample = other.DaugResample
	}

	if len(other.MetricTypes) > 0 {
		result.MetricTypes = other.MetricTypes
	}

	return &result
}

// Fields returns the config field names in declaration order.
func (c *Config) Fields() []string {
	st := reflect.TypeOf(*c)
	fld := make([]string, st.NumField())
	for i := range fld {
		fld[i] = st.Field(i).Name
	}
	return fld
}

// Get returns the value of a field by name, dereferencing bool pointers.
// Unset *bool fields and unknown names are returned as nil.
func (c *Config) Get(key string) interface{} {
	f := reflect.ValueOf(*c).FieldByName(key)
	if !f.IsValid() {
		return nil
	}
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil
		}
		return f.Elem().Interface()
	}
	return f.Interface()
}

// Set assigns a field from its string representation. Used for ad-hoc
// command line overrides on top of a resolved config.
func (c *Config) Set(key, val string) error {
	f := reflect.ValueOf(c).Elem().FieldByName(key)
	if !f.IsValid() {
		return fmt.Errorf("unknown config field: %s", key)
	}
	switch f.Type().Kind() {
	case reflect.Int:
		x, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		f.SetInt(x)
	case reflect.Float64:
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		f.SetFloat(x)
	case reflect.String:
		f.SetString(val)
	case reflect.Ptr:
		x, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		f.Set(reflect.ValueOf(&x))
	case reflect.Slice:
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		f.Set(reflect.ValueOf(parts))
	default:
		return fmt.Errorf("cannot set field %s of type %s", key, f.Type())
	}
	return nil
}

// String renders the config one field per line in declaration order, so
// output is stable across runs.
func (c *Config) String() string {
	var b strings.Builder
	for _, key := range c.Fields() {
		v := c.Get(key)
		if v == nil {
			v = "-"
		}
		fmt.Fprintf(&b, "%-20s: %v\n", key, v)
	}
	return b.String()
}
