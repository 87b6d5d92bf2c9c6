// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"os"
	"strings"
)

// modulePathProperty is the runtime property holding the dependency list.
// It is rendered as its own top-level section, never inside Properties.
const modulePathProperty = "module.path"

// Kind discriminates how a fact value renders.
type Kind int

const (
	// Absent renders the key alone, with no separator.
	Absent Kind = iota
	// Scalar renders on one line next to its key.
	Scalar
	// Sequence renders a header line followed by one element per line.
	Sequence
)

// Value is the classified payload of a single fact. The zero Value is Absent.
type Value struct {
	kind  Kind
	text  string
	items []string
}

// ScalarValue wraps literal text. Empty text still renders as a bare key.
func ScalarValue(text string) Value {
	return Value{kind: Scalar, text: text}
}

// SequenceValue wraps an ordered element list.
func SequenceValue(items ...string) Value {
	return Value{kind: Sequence, items: items}
}

// Kind reports how the value renders.
func (v Value) Kind() Kind { return v.kind }

// Text returns the scalar payload. It is empty for other kinds.
func (v Value) Text() string { return v.text }

// Items returns the sequence elements. It is nil for other kinds.
func (v Value) Items() []string { return v.items }

// empty reports whether the value renders as a bare key line.
func (v Value) empty() bool {
	switch v.kind {
	case Scalar:
		return v.text == ""
	case Sequence:
		return len(v.items) == 0
	default:
		return true
	}
}

// Fact pairs a display key with its classified value.
type Fact struct {
	Key   string
	Value Value
}

// Classify decides at collection time whether raw text is a scalar or a
// path-style list. The split fires only when the text contains the
// platform list separator and the key names a path by convention: an
// upper-case "PATH" suffix, a "-path" fragment, or the module path
// property itself. Values that merely contain the separator, such as
// timestamps inside linker flags, stay scalar.
func Classify(key, text string) Value {
	if text == "" {
		return Value{}
	}
	if pathLike(key, text) {
		return Value{kind: Sequence, items: strings.Split(text, string(os.PathListSeparator))}
	}
	return Value{kind: Scalar, text: text}
}

func pathLike(key, text string) bool {
	if !strings.ContainsRune(text, os.PathListSeparator) {
		return false
	}
	return strings.HasSuffix(key, "PATH") || key == modulePathProperty || strings.Contains(key, "-path")
}
