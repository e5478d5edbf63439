package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/POE21L/tractconf/packages/bundles"
	"github.com/POE21L/tractconf/packages/core/config"
)

// ErrExplicitName is returned when an experiment file sets exp_name itself.
// The name is always derived from the file name so that logs and artifact
// directories can be traced back to their source file.
var ErrExplicitName = errors.New("exp_name must not be set in an experiment file, it is derived from the file name")

// Extensions an experiment file may carry.
var Extensions = []string{".yaml", ".yml"}

// File is one experiment definition loaded from disk: a base preset name
// plus a sparse override of the training config.
type File struct {
	// Name is derived from the file name, not from file content.
	Name string `yaml:"-"`
	Path string `yaml:"-"`

	Base     string        `yaml:"base,omitempty"`
	Override config.Config `yaml:",inline"`
}

// Name derives the experiment name from a file path: the base name up to
// the first dot, so "DmReg_125mm.local.yaml" names the "DmReg_125mm"
// experiment.
func Name(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// IsExperimentFile reports whether path looks like an experiment file.
func IsExperimentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads one experiment file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		Name: Name(path),
		Path: path,
		Base: "tract_seg",
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file is a valid experiment: it inherits everything.
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if f.Override.ExpName != "" {
		return nil, fmt.Errorf("%s: %w", path, ErrExplicitName)
	}
	return f, nil
}

// LoadDir loads every experiment file in a directory, sorted by name so
// results are deterministic.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []*File
	for _, entry := range entries {
		if entry.IsDir() || !IsExperimentFile(entry.Name()) {
			continue
		}
		f, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// OverriddenFields reports which config fields the file itself sets, as
// opposed to values inherited from the defaults or the base preset.
func (f *File) OverriddenFields() map[string]bool {
	fields := make(map[string]bool)
	for _, d := range config.Diff(&config.Config{}, &f.Override) {
		fields[d.Field] = true
	}
	return fields
}

// Resolve produces the effective training config for an experiment:
// defaults, then the base preset, then the file's own overrides, with the
// experiment name stamped from the file name. NumClasses is filled from the
// class taxonomy when the file leaves it unset.
func (f *File) Resolve() (*config.Config, error) {
	base, err := config.Preset(f.Base)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", f.Name, err)
	}

	cfg := base.Merge(&f.Override)
	cfg.ExpName = f.Name

	if cfg.NumClasses == 0 {
		n, err := bundles.Count(cfg.Classes)
		if err != nil {
			return nil, fmt.Errorf("experiment %s: %w", f.Name, err)
		}
		cfg.NumClasses = n
	}
	return cfg, nil
}
