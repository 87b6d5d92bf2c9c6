// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func joinList(parts ...string) string {
	return strings.Join(parts, string(os.PathListSeparator))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		text string
		want Kind
	}{
		{name: "path suffix splits", key: "PATH", text: joinList("/usr/bin", "/bin"), want: Sequence},
		{name: "custom path suffix splits", key: "MY_PATH", text: joinList("/a", "/b", "/c"), want: Sequence},
		{name: "module path property splits", key: "module.path", text: joinList("a@v1.0.0", "b@v2.1.0"), want: Sequence},
		{name: "dashed path key splits", key: "data-path", text: joinList("/data", "/spare"), want: Sequence},
		{name: "path key without separator stays scalar", key: "PATH", text: "/usr/bin", want: Scalar},
		{name: "plain key stays scalar", key: "EDITOR", text: "vim", want: Scalar},
		{name: "separator under non-path key stays scalar", key: "-ldflags", text: "-X main.date=10:30:00", want: Scalar},
		{name: "lowercase path suffix does not trigger", key: "my_path", text: joinList("/a", "/b"), want: Scalar},
		{name: "path fragment without dash does not trigger", key: "xpath", text: joinList("/a", "/b"), want: Scalar},
		{name: "empty text is absent", key: "PATH", text: "", want: Absent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.key, tt.text)
			if got.Kind() != tt.want {
				t.Fatalf("Classify(%q, %q).Kind() = %v, want %v", tt.key, tt.text, got.Kind(), tt.want)
			}
			switch tt.want {
			case Scalar:
				if got.Text() != tt.text {
					t.Errorf("Text() = %q, want %q", got.Text(), tt.text)
				}
			case Sequence:
				if joined := joinList(got.Items()...); joined != tt.text {
					t.Errorf("Items() joined = %q, want %q", joined, tt.text)
				}
			}
		})
	}
}

func TestValueEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{name: "zero value", value: Value{}, want: true},
		{name: "empty scalar", value: ScalarValue(""), want: true},
		{name: "scalar", value: ScalarValue("x"), want: false},
		{name: "empty sequence", value: SequenceValue(), want: true},
		{name: "sequence", value: SequenceValue("a"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.empty(); got != tt.want {
				t.Errorf("empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelValidate(t *testing.T) {
	t.Parallel()

	for _, level := range []Level{Basic, Detailed, Full} {
		if err := level.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", level, err)
		}
	}

	err := Level(7).Validate()
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("Validate(7) = %v, want ErrInvalidLevel", err)
	}
	var invalidErr *InvalidLevelError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Validate(7) error type = %T, want *InvalidLevelError", err)
	}
	if invalidErr.Value != Level(7) {
		t.Errorf("InvalidLevelError.Value = %v, want 7", invalidErr.Value)
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{Basic, "basic"},
		{Detailed, "detailed"},
		{Full, "full"},
		{Level(9), "level(9)"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestLevelFromCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count int
		want  Level
	}{
		{-1, Basic},
		{0, Basic},
		{1, Detailed},
		{2, Full},
		{5, Full},
	}
	for _, tt := range tests {
		if got := LevelFromCount(tt.count); got != tt.want {
			t.Errorf("LevelFromCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
