package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"numerus/internal/numerology/models"
	"numerus/pkg/platform/sentinel"
)

//go:embed systems/*.yaml
var embedded embed.FS

const definitionExt = ".yaml"

// FSSource reads rule-set definitions from <id>.yaml files at the root of an
// fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource reads definitions from fsys, typically os.DirFS(dir).
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Embedded returns the built-in systems compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "systems")
	if err != nil {
		panic(fmt.Sprintf("embedded systems: %v", err))
	}
	return NewFSSource(sub)
}

func (s *FSSource) Load(_ context.Context, id string) (*models.Definition, error) {
	if !isPlainName(id) {
		return nil, fmt.Errorf("rule-set %q: %w", id, sentinel.ErrNotFound)
	}
	data, err := fs.ReadFile(s.fsys, id+definitionExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("rule-set %q: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("read rule-set %q: %w", id, err)
	}
	var def models.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "invalid yaml", Err: err}
	}
	return &def, nil
}

func (s *FSSource) List(_ context.Context) ([]models.SystemInfo, error) {
	names, err := fs.Glob(s.fsys, "*"+definitionExt)
	if err != nil {
		return nil, fmt.Errorf("list rule-sets: %w", err)
	}
	systems := make([]models.SystemInfo, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		id := strings.TrimSuffix(name, definitionExt)
		var header struct {
			Name string `yaml:"name"`
		}
		if err := yaml.Unmarshal(data, &header); err != nil {
			return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "invalid yaml", Err: err}
		}
		systems = append(systems, models.SystemInfo{ID: id, Name: header.Name})
	}
	return systems, nil
}

// isPlainName rejects ids that would escape the root or address a
// subdirectory.
func isPlainName(id string) bool {
	return id != "" && fs.ValidPath(id) && path.Base(id) == id && !strings.ContainsAny(id, `\.`)
}
