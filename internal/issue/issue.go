// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UnknownPipelineId Id = iota + 1
	ManifestInvalidId
	RemoteManifestUnreachableId
	ConfigLoadFailedId
	UpdateCheckFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	unknownPipelineIssue = &Issue{
		id: UnknownPipelineId,
		mdMsg: `
# Pipeline not found!

The pipeline you referenced does not exist under the assets root.

## Things you can try:
- List all available pipelines:
~~~
$ pipewalk list
~~~

- Check for typos in the pipeline name
- Verify the pipeline directory contains a manifest (pipeline.toml,
  pipeline.yaml, or pipeline.cue)
- For remote references, check that the URL is reachable`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Failed to parse pipeline manifest!

The manifest exists but contains syntax errors or invalid fields.

## Common issues:
- Invalid TOML/YAML/CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Whitespace-only description

## Things you can try:
- Check the error message above for the specific field
- Inspect the manifest:
~~~
$ pipewalk info <pipeline>
~~~

## Example of a valid manifest:
~~~toml
description = "RNA sequencing workflow"
repository = "https://github.com/pipewalk/rnaseq"
main_script = "flow.pw"
default_revision = "main"
revisions = ["main", "v1"]
~~~`,
	}

	remoteManifestUnreachableIssue = &Issue{
		id: RemoteManifestUnreachableId,
		mdMsg: `
# Remote manifest unreachable!

The remote pipeline manifest could not be fetched.

## Common causes:
- No network connectivity
- The manifest URL returns a non-2xx status
- The server is behind authentication

## Things you can try:
- Fetch the URL manually to confirm it is reachable:
~~~
$ curl -I https://example.com/pipelines/rnaseq.toml
~~~

- Check proxy settings in your environment
- Mirror the pipeline into your local assets root instead`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the pipewalk configuration file.

## Configuration file locations:
- Linux: ~/.config/pipewalk/config.cue
- macOS: ~/Library/Application Support/pipewalk/config.cue
- Windows: %APPDATA%\pipewalk\config.cue

## Things you can try:
- Check the configuration syntax
- Print the effective configuration:
~~~
$ pipewalk config show
~~~

- Remove the config file to use defaults:
~~~
$ rm ~/.config/pipewalk/config.cue
~~~

## Example configuration:
~~~cue
hub: {
	endpoint: "https://api.github.com"
}

ui: {
	color_scheme: "auto"
	verbose: false
}
~~~`,
	}

	updateCheckFailedIssue = &Issue{
		id: UpdateCheckFailedId,
		mdMsg: `
# Update check failed!

Could not query the release hub for a newer version.

## Common causes:
- No network connectivity
- The hub endpoint is unreachable or misconfigured
- Rate limiting on anonymous requests

## Things you can try:
- Retry later
- Configure a hub token to avoid rate limits:
~~~cue
hub: {
	token: "<your token>"
}
~~~

- Run without the update check (drop the -u flag)`,
	}

	issues = map[Id]*Issue{
		unknownPipelineIssue.Id():           unknownPipelineIssue,
		manifestInvalidIssue.Id():           manifestInvalidIssue,
		remoteManifestUnreachableIssue.Id(): remoteManifestUnreachableIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		updateCheckFailedIssue.Id():         updateCheckFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
