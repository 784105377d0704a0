// Package data loads static game data (skills, monsters, items, maps and
// starter characters) from YAML files.
package data

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// decode reads one YAML document into T. Unknown keys are rejected so that
// typos in data files fail loudly at startup.
func decode[T any](r io.Reader, name string) (T, error) {
	var v T
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, nil
		}
		return v, fmt.Errorf("decoding %s: %w", name, err)
	}
	return v, nil
}

// openAndLoad opens path and hands it to load.
func openAndLoad[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		return v, fmt.Errorf("loading %s: %w", path, err)
	}
	return v, nil
}
