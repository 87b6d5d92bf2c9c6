// SPDX-License-Identifier: MPL-2.0

package assets

import "github.com/pipewalk/pipewalk/pkg/types"

// Default manifest values, applied when the manifest omits the field.
const (
	DefaultMainScript = "main.pw"
	DefaultRevision   = "main"
)

// Project describes one resolved pipeline.
type Project struct {
	// Name is the pipeline name, derived from the directory or the
	// remote manifest file name.
	Name string
	// Repository is the upstream source location. For remote references
	// it defaults to the reference itself.
	Repository string
	// LocalPath is the pipeline directory under the assets root. It is
	// empty for remote references.
	LocalPath string
	// MainScript is the entry point script, relative to the pipeline
	// directory.
	MainScript string
	// Description is the free-form manifest summary.
	Description types.DescriptionText
	// DefaultRevision names the revision used when none is requested.
	DefaultRevision string
	// Revisions lists the revisions the manifest declares, in manifest
	// order.
	Revisions []string
}

// manifest is the on-disk pipeline descriptor.
type manifest struct {
	Description     string   `toml:"description" yaml:"description" json:"description"`
	Repository      string   `toml:"repository" yaml:"repository" json:"repository"`
	MainScript      string   `toml:"main_script" yaml:"main_script" json:"main_script"`
	DefaultRevision string   `toml:"default_revision" yaml:"default_revision" json:"default_revision"`
	Revisions       []string `toml:"revisions" yaml:"revisions" json:"revisions"`
}

// validate enforces field constraints the decoders cannot express.
// TOML and YAML manifests bypass the CUE schema, so the description
// constraint is repeated here.
func (m manifest) validate() error {
	if valid, errs := types.DescriptionText(m.Description).IsValid(); !valid {
		return errs[0]
	}
	return nil
}

// project converts a decoded manifest into a Project, filling defaults.
func (m manifest) project(name, localPath, fallbackRepo string) *Project {
	p := &Project{
		Name:            name,
		Repository:      m.Repository,
		LocalPath:       localPath,
		MainScript:      m.MainScript,
		Description:     types.DescriptionText(m.Description),
		DefaultRevision: m.DefaultRevision,
		Revisions:       m.Revisions,
	}
	if p.Repository == "" {
		p.Repository = fallbackRepo
	}
	if p.MainScript == "" {
		p.MainScript = DefaultMainScript
	}
	if p.DefaultRevision == "" {
		p.DefaultRevision = DefaultRevision
	}
	return p
}
