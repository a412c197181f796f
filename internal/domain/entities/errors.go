package entities

import "fmt"

// RemoteQueryError indicates that the remote tag listing could not be
// retrieved: the network call failed or the remote returned a non-OK status.
type RemoteQueryError struct {
	Source string // Tag source that was queried
	Err    error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("remote tag query failed for %s: %v", e.Source, e.Err)
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }

// NoMatchingTagError indicates the tag listing succeeded but no entry
// matched the version pattern, so there is nothing to select.
type NoMatchingTagError struct {
	Pattern string
	Listed  int // How many tags the remote returned before filtering
}

func (e *NoMatchingTagError) Error() string {
	return fmt.Sprintf("no tag matching %q among %d listed tags", e.Pattern, e.Listed)
}

// InstallerError indicates the installer payload could not be downloaded,
// failed verification, or exited non-zero.
type InstallerError struct {
	Stage    string // "download", "verify", or "execute"
	ExitCode int    // Installer exit code; meaningful only for "execute"
	Err      error
}

func (e *InstallerError) Error() string {
	if e.Stage == "execute" {
		return fmt.Sprintf("installer failed during execute (exit %d): %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("installer failed during %s: %v", e.Stage, e.Err)
}

func (e *InstallerError) Unwrap() error { return e.Err }

// ComponentInstallError indicates the toolchain manager rejected a
// component. The run aborts on the first such failure; later components
// are never attempted.
type ComponentInstallError struct {
	Component string
	ExitCode  int
	Err       error
}

func (e *ComponentInstallError) Error() string {
	return fmt.Sprintf("failed to add toolchain component %s (exit %d): %v", e.Component, e.ExitCode, e.Err)
}

func (e *ComponentInstallError) Unwrap() error { return e.Err }
