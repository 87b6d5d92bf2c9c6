// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"os"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/pipewalk/pipewalk/internal/vfs"
)

// Source exposes the process-shaped inputs a report reads. Implementations
// must be safe for repeated calls; the collector never caches across calls.
// The host process is the default Source, and tests substitute fixtures.
type Source interface {
	// Environ returns the environment as a key/value map.
	Environ() map[string]string
	// Properties returns the runtime property table, including the
	// module path property when dependency information is available.
	Properties() map[string]string
	// Schemes returns the registered virtual file system schemes in
	// registration order.
	Schemes() []string
	// Args returns the launch arguments, without the program name.
	Args() []string
}

type hostSource struct{}

// HostSource returns the Source backed by the running process.
func HostSource() Source { return hostSource{} }

func (hostSource) Environ() map[string]string {
	env := os.Environ()
	out := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func (hostSource) Properties() map[string]string {
	props := map[string]string{
		"go.version":  runtime.Version(),
		"go.compiler": runtime.Compiler,
		"go.os":       runtime.GOOS,
		"go.arch":     runtime.GOARCH,
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return props
	}
	if info.Main.Path != "" {
		props["main.module"] = info.Main.Path
	}
	if info.Main.Version != "" {
		props["main.version"] = info.Main.Version
	}
	for _, s := range info.Settings {
		props[s.Key] = s.Value
	}
	if mp := modulePath(info); mp != "" {
		props[modulePathProperty] = mp
	}
	return props
}

// modulePath joins every resolved dependency as path@version with the
// platform list separator, mirroring how PATH-style variables are stored.
func modulePath(info *debug.BuildInfo) string {
	if len(info.Deps) == 0 {
		return ""
	}
	parts := make([]string, 0, len(info.Deps))
	for _, dep := range info.Deps {
		m := dep
		if dep.Replace != nil {
			m = dep.Replace
		}
		parts = append(parts, m.Path+"@"+m.Version)
	}
	return strings.Join(parts, string(os.PathListSeparator))
}

func (hostSource) Schemes() []string { return vfs.Schemes() }

func (hostSource) Args() []string {
	if len(os.Args) <= 1 {
		return nil
	}
	return slices.Clone(os.Args[1:])
}
