// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pipewalk/pipewalk/internal/build"
)

const (
	// envPrefix selects which environment variables the Basic and
	// Detailed levels report.
	envPrefix = "PIPEWALK_"

	// launcherPrefix routes a launch argument into the Launcher section.
	launcherPrefix = "-Dlauncher."
	// flagMarker is stripped from launcher argument keys before display.
	flagMarker = "-D"

	// modifiedLayout formats the build timestamp, always in UTC.
	modifiedLayout = "02-01-2006 15:04 UTC"
)

// Deps carries the collector's injectable inputs. Zero fields fall back to
// the host process, so Deps{} builds a fully functional collector.
type Deps struct {
	// Source supplies environment, properties, schemes, and arguments.
	Source Source
	// Build identifies the running binary.
	Build build.Info
	// Now anchors relative timestamps.
	Now func() time.Time
	// SystemProbe names the operating system distribution.
	SystemProbe func(context.Context) (string, error)
	// ProcessName identifies the process as pid@hostname.
	ProcessName func() string
	// LocalAddr resolves the primary non-loopback IPv4 address.
	LocalAddr func() (string, bool)
}

// Collector gathers runtime facts on demand. It holds no mutable state and
// is safe for concurrent use once constructed.
type Collector struct {
	src       Source
	build     build.Info
	now       func() time.Time
	sysProbe  func(context.Context) (string, error)
	procName  func() string
	localAddr func() (string, bool)
}

// NewCollector builds a collector, substituting host-backed defaults for
// any dependency left unset.
func NewCollector(deps Deps) *Collector {
	if deps.Source == nil {
		deps.Source = HostSource()
	}
	if deps.Build == (build.Info{}) {
		deps.Build = build.Resolve()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.SystemProbe == nil {
		deps.SystemProbe = hostSystem
	}
	if deps.ProcessName == nil {
		deps.ProcessName = hostProcessName
	}
	if deps.LocalAddr == nil {
		deps.LocalAddr = hostLocalAddr
	}
	return &Collector{
		src:       deps.Source,
		build:     deps.Build,
		now:       deps.Now,
		sysProbe:  deps.SystemProbe,
		procName:  deps.ProcessName,
		localAddr: deps.LocalAddr,
	}
}

// Core returns the five facts every report opens with, in render order.
func (c *Collector) Core(ctx context.Context) []Fact {
	return []Fact{
		{Key: "Version", Value: ScalarValue(c.build.Version + " build " + c.build.BuildNum)},
		{Key: "Modified", Value: ScalarValue(c.modified())},
		{Key: "System", Value: ScalarValue(c.system(ctx))},
		{Key: "Runtime", Value: ScalarValue(runtimeIdentity())},
		{Key: "Encoding", Value: ScalarValue(c.encoding())},
	}
}

// modified renders the build timestamp with a human relative suffix, or
// "unknown" when the binary carries no timestamp at all.
func (c *Collector) modified() string {
	ts := c.build.Timestamp
	if ts.IsZero() {
		return "unknown"
	}
	delta := humanize.RelTime(ts, c.now(), "ago", "from now")
	return fmt.Sprintf("%s (%s)", ts.UTC().Format(modifiedLayout), delta)
}

// system prefers the probed distribution name and degrades silently to the
// compile-time OS when probing fails.
func (c *Collector) system(ctx context.Context) string {
	name, err := c.sysProbe(ctx)
	if err != nil || name == "" {
		return runtime.GOOS
	}
	return name
}

func runtimeIdentity() string {
	version := strings.TrimPrefix(runtime.Version(), "go")
	return fmt.Sprintf("Go %s on %s %s/%s", version, runtime.Compiler, runtime.GOOS, runtime.GOARCH)
}

func (c *Collector) encoding() string {
	return fmt.Sprintf("UTF-8 (%s)", nativeEncoding(c.src.Environ()))
}

// ProcessIdentity names the process as pid@hostname, suffixed with the
// primary IPv4 address in brackets when one resolves.
func (c *Collector) ProcessIdentity() Fact {
	name := c.procName()
	if addr, ok := c.localAddr(); ok {
		name += " [" + addr + "]"
	}
	return Fact{Key: "Process", Value: ScalarValue(name)}
}

// FileSystems lists the registered virtual file system schemes.
func (c *Collector) FileSystems() Fact {
	return Fact{Key: "File systems", Value: SequenceValue(c.src.Schemes()...)}
}

// LaunchArguments partitions the launch arguments into general options and
// launcher-reserved options, preserving command-line order within each.
func (c *Collector) LaunchArguments() (opts, launcher []Fact) {
	for _, arg := range c.src.Args() {
		if strings.HasPrefix(arg, launcherPrefix) {
			launcher = append(launcher, argFact(strings.TrimPrefix(arg, flagMarker)))
			continue
		}
		opts = append(opts, argFact(arg))
	}
	return opts, launcher
}

// argFact splits an argument on its first '='. Bare flags carry no value
// and render as a key alone.
func argFact(arg string) Fact {
	key, val, found := strings.Cut(arg, "=")
	if !found {
		return Fact{Key: key}
	}
	return Fact{Key: key, Value: Classify(key, val)}
}

// Environment returns environment facts sorted by key. Below Full only
// variables carrying the product prefix are included.
func (c *Collector) Environment(level Level) []Fact {
	env := c.src.Environ()
	keys := make([]string, 0, len(env))
	for k := range env {
		if level < Full && !strings.HasPrefix(k, envPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	facts := make([]Fact, 0, len(keys))
	for _, k := range keys {
		facts = append(facts, Fact{Key: k, Value: Classify(k, env[k])})
	}
	return facts
}

// SystemProperties returns the runtime property facts sorted by key. The
// module path property is excluded here; it renders as its own section.
func (c *Collector) SystemProperties() []Fact {
	props := c.src.Properties()
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == modulePathProperty {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	facts := make([]Fact, 0, len(keys))
	for _, k := range keys {
		facts = append(facts, Fact{Key: k, Value: Classify(k, props[k])})
	}
	return facts
}

// ModulePath returns the dependency list fact. The value splits into one
// element per dependency; when the binary has none the key renders alone.
func (c *Collector) ModulePath() Fact {
	return Fact{Key: "Module-path", Value: Classify(modulePathProperty, c.src.Properties()[modulePathProperty])}
}
