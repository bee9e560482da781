// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputFile is a named blob handed to the renamer. Content is never modified.
type InputFile struct {
	// Name is the original base filename (e.g. "report3.pdf").
	Name string `json:"name" yaml:"name"`

	// Content holds the raw file bytes.
	Content []byte `json:"-" yaml:"-"`
}
