// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used by the
// pipeline manifest and configuration packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[Manifest](
//	    schema,
//	    data,
//	    "#Pipeline",
//	    cueutil.WithFilename("pipeline.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the CUE path to the bad field
//	}
//	return result.Value, nil
package cueutil
