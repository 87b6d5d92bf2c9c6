// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pipewalk/pipewalk/internal/assets"
	"github.com/pipewalk/pipewalk/internal/diagnostics"
	"github.com/pipewalk/pipewalk/internal/issue"
	"github.com/pipewalk/pipewalk/internal/release"
)

type (
	// fakeReporter records the report request and returns a canned body.
	fakeReporter struct {
		report     string
		calls      int
		gotLevel   diagnostics.Level
		gotProcess bool
	}

	// fakeAssets resolves from a fixed project map; unknown names fail the
	// same way the real manager does.
	fakeAssets struct {
		projects map[string]*assets.Project
		names    []string
		err      error
	}

	// fakeReleases returns a canned update or error.
	fakeReleases struct {
		update *release.Update
		err    error
	}
)

func (f *fakeReporter) Report(_ context.Context, level diagnostics.Level, withProcess bool) string {
	f.calls++
	f.gotLevel = level
	f.gotProcess = withProcess
	return f.report
}

func (f *fakeAssets) Resolve(_ context.Context, ref string) (*assets.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	proj, ok := f.projects[ref]
	if !ok {
		return nil, &assets.UnknownPipelineError{Name: ref}
	}
	return proj, nil
}

func (f *fakeAssets) List(_ context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func (f *fakeReleases) Check(_ context.Context, _ string) (*release.Update, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.update, nil
}

// newInfoTestParams wires an infoParams around fake services and fresh buffers.
func newInfoTestParams(app *App) (infoParams, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return infoParams{
		stdout: &stdout,
		stderr: &stderr,
		app:    app,
	}, &stdout, &stderr
}

func TestRunInfoPrintsReport(t *testing.T) {
	t.Parallel()

	reporter := &fakeReporter{report: "  Version: 1.4.2 build 57\n"}
	p, stdout, stderr := newInfoTestParams(&App{Reporter: reporter})
	p.level = diagnostics.Detailed

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stdout.String(); got != reporter.report {
		t.Errorf("stdout = %q, want %q", got, reporter.report)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %q", stderr.String())
	}
	if reporter.gotLevel != diagnostics.Detailed {
		t.Errorf("reporter level = %v, want %v", reporter.gotLevel, diagnostics.Detailed)
	}
	if !reporter.gotProcess {
		t.Error("reporter should be asked for process identity")
	}
}

func TestRunInfoDescribesPipeline(t *testing.T) {
	t.Parallel()

	fa := &fakeAssets{projects: map[string]*assets.Project{
		"rnaseq": {
			Name:            "rnaseq",
			Repository:      "https://github.com/acme/rnaseq",
			LocalPath:       "/opt/pipelines/rnaseq",
			MainScript:      "flow.pw",
			Description:     "RNA sequencing workflow",
			DefaultRevision: "main",
			Revisions:       []string{"main", "v1"},
		},
	}}
	reporter := &fakeReporter{report: "should not appear\n"}
	p, stdout, _ := newInfoTestParams(&App{Assets: fa, Reporter: reporter})
	p.pipeline = "rnaseq"

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"  Name: rnaseq",
		"  Repository: https://github.com/acme/rnaseq",
		"  Local path: /opt/pipelines/rnaseq",
		"  Main script: flow.pw",
		"  Description: RNA sequencing workflow",
		"  Revisions:",
		"    * main",
		"      v1",
	}, "\n") + "\n"
	if got := stdout.String(); got != want {
		t.Errorf("pipeline block:\n%s\nwant:\n%s", got, want)
	}
	if reporter.calls != 0 {
		t.Errorf("reporter called %d times, want 0", reporter.calls)
	}
}

func TestRunInfoDescribesRemotePipeline(t *testing.T) {
	t.Parallel()

	// Remote projects carry no local path; the block must drop the line
	// instead of rendering an empty value.
	fa := &fakeAssets{projects: map[string]*assets.Project{
		"https://hub.example.com/rnaseq/pipeline.toml": {
			Name:            "rnaseq",
			Repository:      "https://hub.example.com/rnaseq/pipeline.toml",
			MainScript:      "main.pw",
			DefaultRevision: "main",
		},
	}}
	p, stdout, _ := newInfoTestParams(&App{Assets: fa})
	p.pipeline = "https://hub.example.com/rnaseq/pipeline.toml"

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	if strings.Contains(out, "Local path") {
		t.Errorf("remote block should omit the local path:\n%s", out)
	}
	if strings.Contains(out, "Description") {
		t.Errorf("block should omit the empty description:\n%s", out)
	}
	if strings.Contains(out, "Revisions") {
		t.Errorf("block should omit the empty revision list:\n%s", out)
	}
	if !strings.Contains(out, "  Main script: main.pw") {
		t.Errorf("block misses the main script line:\n%s", out)
	}
}

func TestRunInfoUnknownPipeline(t *testing.T) {
	t.Parallel()

	p, _, stderr := newInfoTestParams(&App{Assets: &fakeAssets{}})
	p.pipeline = "nope"

	err := runInfo(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for unknown pipeline")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, assets.ErrUnknownPipeline) {
		t.Errorf("error should wrap ErrUnknownPipeline, got %v", err)
	}
	if !strings.Contains(stderr.String(), `unknown pipeline "nope"`) {
		t.Errorf("stderr misses the resolution failure: %q", stderr.String())
	}
}

func TestResolveServiceErrorIssueMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		err  error
		want issue.Id
	}{
		{
			name: "unknown local pipeline",
			ref:  "nope",
			err:  &assets.UnknownPipelineError{Name: "nope"},
			want: issue.UnknownPipelineId,
		},
		{
			name: "unreachable remote manifest",
			ref:  "https://hub.example.com/x/pipeline.toml",
			err:  &assets.UnknownPipelineError{Name: "x", Err: errors.New("connection refused")},
			want: issue.RemoteManifestUnreachableId,
		},
		{
			name: "invalid manifest",
			ref:  "broken",
			err:  &assets.ManifestError{Name: "broken", Path: "pipeline.toml", Err: errors.New("bad toml")},
			want: issue.ManifestInvalidId,
		},
		{
			name: "unclassified failure",
			ref:  "x",
			err:  errors.New("disk on fire"),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svcErr := resolveServiceError(tt.ref, tt.err)
			if svcErr.IssueID != tt.want {
				t.Errorf("IssueID = %d, want %d", svcErr.IssueID, tt.want)
			}
			if !errors.Is(svcErr, tt.err) {
				t.Errorf("ServiceError should wrap %v", tt.err)
			}
		})
	}
}

func TestRunInfoUpdateAvailable(t *testing.T) {
	t.Parallel()

	fr := &fakeReleases{update: &release.Update{
		Current: "v1.0.0",
		Latest:  "v1.1.0",
		Newer:   true,
		URL:     "https://github.com/pipewalk/pipewalk/releases/tag/v1.1.0",
	}}
	reporter := &fakeReporter{report: "  Version: 1.0.0 build 3\n"}
	p, stdout, stderr := newInfoTestParams(&App{Reporter: reporter, Releases: fr})
	p.update = true

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Update available: v1.0.0 → v1.1.0") {
		t.Errorf("stdout misses the update banner:\n%s", out)
	}
	if !strings.Contains(out, "Download: https://github.com/pipewalk/pipewalk/releases/tag/v1.1.0") {
		t.Errorf("stdout misses the download link:\n%s", out)
	}
	if !strings.HasPrefix(out, reporter.report) {
		t.Errorf("report should precede the update banner:\n%s", out)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %q", stderr.String())
	}
}

func TestRunInfoUpToDate(t *testing.T) {
	t.Parallel()

	fr := &fakeReleases{update: &release.Update{Current: "v1.1.0", Latest: "v1.1.0"}}
	p, stdout, _ := newInfoTestParams(&App{Reporter: &fakeReporter{}, Releases: fr})
	p.update = true

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "pipewalk v1.1.0 is up to date.") {
		t.Errorf("stdout misses the up-to-date notice:\n%s", stdout.String())
	}
}

func TestRunInfoUpdateCheckFailureDegradesToWarning(t *testing.T) {
	t.Parallel()

	fr := &fakeReleases{err: fmt.Errorf("hub says no: %w", errors.New("503"))}
	p, stdout, stderr := newInfoTestParams(&App{Reporter: &fakeReporter{report: "  Version: x\n"}, Releases: fr})
	p.update = true

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("update failure must not fail the command: %v", err)
	}

	if !strings.Contains(stderr.String(), "update check failed") {
		t.Errorf("stderr misses the warning: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Version: x") {
		t.Errorf("report must still be printed:\n%s", stdout.String())
	}
}

func TestRunInfoUpdateCheckRateLimitHint(t *testing.T) {
	t.Parallel()

	fr := &fakeReleases{err: &release.RateLimitError{Limit: 60, Remaining: 0}}
	p, _, stderr := newInfoTestParams(&App{Reporter: &fakeReporter{}, Releases: fr})
	p.update = true

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stderr.String(), hubTokenEnv) {
		t.Errorf("rate limit warning should mention %s: %q", hubTokenEnv, stderr.String())
	}
}

func TestRunInfoUpdateCheckDevelopmentBuild(t *testing.T) {
	t.Parallel()

	fr := &fakeReleases{err: fmt.Errorf("%w: %q", release.ErrDevelopmentBuild, "dev")}
	p, stdout, stderr := newInfoTestParams(&App{Reporter: &fakeReporter{}, Releases: fr})
	p.update = true

	if err := runInfo(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "Skipping update check for development build.") {
		t.Errorf("stdout misses the skip notice:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("development builds should not warn: %q", stderr.String())
	}
}
