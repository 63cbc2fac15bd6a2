package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// IsCreate reports whether the event announces a new file.
func (e FileEvent) IsCreate() bool {
	return e.Operation == "CREATE"
}
