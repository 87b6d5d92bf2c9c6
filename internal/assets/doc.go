// SPDX-License-Identifier: MPL-2.0

// Package assets resolves pipeline projects from the local assets folder
// and from remote manifest references.
//
// A pipeline lives in a directory named after it under the assets root and
// carries a manifest, pipeline.toml by preference with pipeline.yaml as the
// fallback. Remote references are full URLs to a manifest and are read
// through the virtual file system registry, so anything with a registered
// scheme can host one.
//
// Names that do not resolve surface ErrUnknownPipeline to the caller;
// nothing in this package degrades silently.
package assets
