// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pipewalk/pipewalk/internal/vfs"
	"github.com/pipewalk/pipewalk/pkg/cueutil"
)

// defaultDirName anchors the assets root under the user home directory.
const defaultDirName = ".pipewalk"

//go:embed manifest_schema.cue
var manifestSchema string

// manifestBases are probed in order inside a pipeline directory.
var manifestBases = [...]string{"pipeline.toml", "pipeline.yaml", "pipeline.cue"}

// Manager resolves pipelines below a local assets root. Remote manifest
// references bypass the root and go through the virtual file system.
type Manager struct {
	root     string
	registry *vfs.Registry
}

// Option adjusts a Manager during construction.
type Option func(*Manager)

// WithRegistry substitutes the virtual file system registry used to read
// manifests.
func WithRegistry(reg *vfs.Registry) Option {
	return func(m *Manager) { m.registry = reg }
}

// NewManager builds a Manager rooted at the given directory.
func NewManager(root string, opts ...Option) *Manager {
	m := &Manager{
		root:     root,
		registry: vfs.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultRoot returns the per-user assets directory.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName, "assets"), nil
}

// Root returns the local assets root the manager was built with.
func (m *Manager) Root() string { return m.root }

// Resolve loads the project behind a pipeline reference. Plain names are
// looked up under the assets root; references carrying a scheme are read as
// remote manifests. Unresolvable references return ErrUnknownPipeline.
func (m *Manager) Resolve(ctx context.Context, ref string) (*Project, error) {
	if strings.Contains(ref, "://") {
		return m.resolveRemote(ctx, ref)
	}
	return m.resolveLocal(ctx, ref)
}

func (m *Manager) resolveLocal(ctx context.Context, name string) (*Project, error) {
	dir := filepath.Join(m.root, name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, &UnknownPipelineError{Name: name}
	}
	manifestPath := ""
	for _, base := range manifestBases {
		candidate := filepath.Join(dir, base)
		if _, err := os.Stat(candidate); err == nil {
			manifestPath = candidate
			break
		}
	}
	if manifestPath == "" {
		return nil, &UnknownPipelineError{Name: name}
	}
	man, err := m.readManifest(ctx, name, manifestPath)
	if err != nil {
		return nil, err
	}
	return man.project(name, dir, ""), nil
}

func (m *Manager) resolveRemote(ctx context.Context, ref string) (*Project, error) {
	man, err := m.readManifest(ctx, ref, ref)
	if err != nil {
		return nil, err
	}
	return man.project(remoteName(ref), "", ref), nil
}

// readManifest fetches and decodes one manifest. Read failures classify the
// reference as unknown; decode failures mark the manifest invalid.
func (m *Manager) readManifest(ctx context.Context, name, ref string) (manifest, error) {
	var man manifest
	rc, err := m.registry.Open(ctx, ref)
	if err != nil {
		return man, &UnknownPipelineError{Name: name, Err: err}
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return man, &UnknownPipelineError{Name: name, Err: err}
	}
	switch {
	case isYAML(ref):
		err = yaml.Unmarshal(data, &man)
	case isCUE(ref):
		var result *cueutil.ParseResult[manifest]
		result, err = cueutil.ParseAndDecodeString[manifest](manifestSchema, data, "#Pipeline",
			cueutil.WithFilename(ref), cueutil.WithConcrete(false))
		if err == nil {
			man = *result.Value
		}
	default:
		err = toml.Unmarshal(data, &man)
	}
	if err != nil {
		return man, &ManifestError{Name: name, Path: ref, Err: err}
	}
	if err := man.validate(); err != nil {
		return man, &ManifestError{Name: name, Path: ref, Err: err}
	}
	return man, nil
}

func isYAML(ref string) bool {
	return strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml")
}

func isCUE(ref string) bool {
	return strings.HasSuffix(ref, ".cue")
}

// remoteName derives a pipeline name from a manifest URL.
func remoteName(ref string) string {
	name := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	}
	for _, ext := range []string{".toml", ".yaml", ".yml", ".cue"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// List returns the names of every pipeline under the assets root, sorted.
// A missing root is not an error; it simply holds no pipelines yet.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read assets root %s: %w", m.root, err)
	}
	var names []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		for _, base := range manifestBases {
			if _, err := os.Stat(filepath.Join(m.root, entry.Name(), base)); err == nil {
				names = append(names, entry.Name())
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
