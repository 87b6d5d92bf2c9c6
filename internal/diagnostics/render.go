// SPDX-License-Identifier: MPL-2.0

package diagnostics

import "strings"

// indentUnit is one depth step. The report body starts at depth 1.
const indentUnit = "  "

// renderer accumulates report lines. Every write appends exactly one line
// terminated by a single newline.
type renderer struct {
	sb strings.Builder
}

func newRenderer() *renderer { return &renderer{} }

func (r *renderer) String() string { return r.sb.String() }

// fact writes one fact at the given depth, dispatching on the value kind.
// Sequences emit a header and one element per line a level deeper; empty
// values of any kind collapse to a bare key line.
func (r *renderer) fact(depth int, f Fact) {
	if f.Value.empty() {
		r.keyOnly(depth, f.Key)
		return
	}
	if f.Value.Kind() == Sequence {
		r.header(depth, f.Key)
		for _, item := range f.Value.Items() {
			r.element(depth+1, item)
		}
		return
	}
	r.scalar(depth, f.Key, f.Value.Text())
}

// group writes a section header and its members one level deeper. Empty
// sections collapse to a bare key line.
func (r *renderer) group(depth int, key string, members []Fact) {
	if len(members) == 0 {
		r.keyOnly(depth, key)
		return
	}
	r.header(depth, key)
	for _, m := range members {
		r.fact(depth+1, m)
	}
}

func (r *renderer) scalar(depth int, key, value string) {
	r.indent(depth)
	r.sb.WriteString(key)
	r.sb.WriteString(separator(depth))
	if depth == 1 {
		r.sb.WriteByte(' ')
	}
	r.sb.WriteString(escapeTerminators(value))
	r.sb.WriteByte('\n')
}

func (r *renderer) header(depth int, key string) {
	r.indent(depth)
	r.sb.WriteString(key)
	r.sb.WriteString(separator(depth))
	r.sb.WriteByte('\n')
}

func (r *renderer) keyOnly(depth int, key string) {
	r.indent(depth)
	r.sb.WriteString(key)
	r.sb.WriteByte('\n')
}

func (r *renderer) element(depth int, text string) {
	r.indent(depth)
	r.sb.WriteString(text)
	r.sb.WriteByte('\n')
}

func (r *renderer) indent(depth int) {
	for i := 0; i < depth; i++ {
		r.sb.WriteString(indentUnit)
	}
}

// RenderFacts renders standalone facts with the report grammar, each as a
// top-level entry. Commands use it for fact blocks outside the full report.
func RenderFacts(facts []Fact) string {
	r := newRenderer()
	for _, f := range facts {
		r.fact(1, f)
	}
	return r.String()
}

// separator is ':' for depth 1 entries and '=' anywhere deeper.
func separator(depth int) string {
	if depth == 1 {
		return ":"
	}
	return "="
}

// escapeTerminators rewrites values consisting solely of line terminators
// into their literal backslash forms, keeping every report line a single
// physical line. Terminators embedded in longer values pass through.
func escapeTerminators(value string) string {
	switch value {
	case "\n":
		return `\n`
	case "\r":
		return `\r`
	case "\n\r":
		return `\n\r`
	case "\r\n":
		return `\r\n`
	}
	return value
}
