package model

import "time"

// Model is a named, versioned reference to a stored artifact. Records are
// immutable once registered; registering the same name again bumps Version.
type Model struct {
	ID          string
	Name        string
	Version     int
	WorkspaceID string // references Workspace
	Path        string // local path of the registered artifact
	Checksum    string // sha256 of the artifact content
	Description string
	Tags        map[string]string
	CreatedAt   time.Time
}
