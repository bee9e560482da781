// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeStatus indicates whether a file was renamed.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusWarning OutcomeStatus = "warning"
)

// Outcome records what happened to one input file during a rename run.
type Outcome struct {
	// OriginalName is the filename as supplied.
	OriginalName string `json:"original_name" yaml:"original_name"`

	// Status is success when the file was renamed, warning when it was
	// passed through under its original name.
	Status OutcomeStatus `json:"status" yaml:"status"`

	// Message is the human-readable result line.
	Message string `json:"message" yaml:"message"`

	// NewName is the archive entry name after renaming. Empty on warnings.
	NewName string `json:"new_name,omitempty" yaml:"new_name,omitempty"`
}

// EntryName returns the name under which the file appears in the archive.
func (o Outcome) EntryName() string {
	if o.NewName != "" {
		return o.NewName
	}
	return o.OriginalName
}
