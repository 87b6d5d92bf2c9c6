// SPDX-License-Identifier: MPL-2.0

// Package diagnostics collects runtime facts and renders them as the
// deterministic, indented text report behind `pipewalk info`.
//
// The package is organized into two roles:
//   - Collector (collector.go, source.go, probes.go, encoding.go): read-only
//     fact gathering from an injectable Source plus host probes
//   - renderer (render.go, value.go): the key/value dump grammar — two-space
//     indent units, ':' separators at depth 1 and '=' below, collection
//     expansion, and line-terminator escaping
//
// Reports are built fresh on every call and carry no cross-call state. The
// rendering rules are load-bearing: operators script against this output, so
// the section order, separators, and the path-splitting trigger set must not
// change shape.
package diagnostics
