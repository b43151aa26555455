package definition

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions LoadDir picks up.
var Extensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// IsDefinitionFile reports whether path has a definition extension.
func IsDefinitionFile(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes a definition. Files named .json or .jsonc are stripped of
// comments and trailing commas first; JSON is then decoded as YAML. Unknown
// fields are rejected. The result is not validated.
func Parse(data []byte, name string) (*Spec, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, errors.NewValidationError("definition is empty").WithField("file").WithValue(name)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	spec.Source = name
	return &spec, nil
}

// LoadFile reads, parses and validates one definition file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadFiles loads definition files concurrently. Specs are returned in path
// order; every failure is reported, joined.
func LoadFiles(paths []string) ([]*Spec, error) {
	type result struct {
		spec *Spec
		err  error
	}

	sorted := slices.Clone(paths)
	slices.Sort(sorted)

	results := iter.Map(sorted, func(path *string) result {
		spec, err := LoadFile(*path)
		return result{spec: spec, err: err}
	})

	specs := make([]*Spec, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		specs = append(specs, r.spec)
	}
	return specs, errors.Join(errs...)
}

// LoadDir loads every definition file directly inside dir. A missing
// directory yields no specs and no error.
func LoadDir(dir string) ([]*Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading definitions dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsDefinitionFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return LoadFiles(paths)
}
