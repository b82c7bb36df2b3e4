// Package types holds values shared between the generator stages and the UI.
package types

// FileStatus is the outcome of rendering one output file.
type FileStatus int

const (
	// FileStatusCreated marks a file that did not exist before.
	FileStatusCreated FileStatus = iota
	// FileStatusUpdated marks a file that replaced an existing one.
	FileStatusUpdated
	// FileStatusSkipped marks an entry that was never written.
	FileStatusSkipped
)

// String returns the string representation of FileStatus.
func (s FileStatus) String() string {
	switch s {
	case FileStatusCreated:
		return "CREATE"
	case FileStatusUpdated:
		return "UPDATE"
	case FileStatusSkipped:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Icon returns the icon for the file status.
func (s FileStatus) Icon() string {
	switch s {
	case FileStatusCreated:
		return "+"
	case FileStatusUpdated:
		return "~"
	case FileStatusSkipped:
		return "-"
	default:
		return "?"
	}
}

// ValidationResult is the outcome of validating one configuration file.
type ValidationResult struct {
	Path  string
	Valid bool
	Err   error
}
