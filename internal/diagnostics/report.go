// SPDX-License-Identifier: MPL-2.0

package diagnostics

import "context"

// Report renders the full diagnostic report for the given level. Sections
// appear in a fixed order and each level renders a superset of the one
// below it; withProcess adds the process identity line and forces the
// module path section regardless of level. Only the inputs a level needs
// are gathered.
func (c *Collector) Report(ctx context.Context, level Level, withProcess bool) string {
	r := newRenderer()
	for _, f := range c.Core(ctx) {
		r.fact(1, f)
	}
	if withProcess {
		r.fact(1, c.ProcessIdentity())
	}
	if level >= Detailed {
		r.fact(1, c.FileSystems())
		opts, launcher := c.LaunchArguments()
		r.group(1, "Launch opts", opts)
		r.group(1, "Launcher", launcher)
		r.group(1, "Environment", c.Environment(level))
	}
	if level >= Full {
		r.group(1, "Properties", c.SystemProperties())
	}
	if withProcess || level >= Full {
		r.fact(1, c.ModulePath())
	}
	return r.String()
}

// Status renders the short Basic report used by error footers and crash
// context, optionally including the process identity.
func (c *Collector) Status(ctx context.Context, withProcess bool) string {
	return c.Report(ctx, Basic, withProcess)
}

// Report renders a diagnostic report from the host process.
func Report(ctx context.Context, level Level, withProcess bool) string {
	return NewCollector(Deps{}).Report(ctx, level, withProcess)
}

// Status renders a Basic host report for embedding in error output.
func Status(ctx context.Context, withProcess bool) string {
	return NewCollector(Deps{}).Status(ctx, withProcess)
}
