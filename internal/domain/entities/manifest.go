package entities

// Manifest describes how a single CI tool is bootstrapped: where its tags
// live, how its installer is fetched and verified, which target triple each
// platform signal maps to, and which toolchain components it needs.
type Manifest struct {
	Name        string
	Description string
	Tag         TagConfig
	Installer   InstallerConfig
	Targets     TargetMap
	Components  ComponentConfig
}

// TagConfig represents the remote tag listing configuration
type TagConfig struct {
	Source  string // e.g., "github:owner/repo" or "git:https://..."
	Pattern string // Regex a release tag must match (default "^v[0-9.]+$")
}

// InstallerConfig represents the remote installer payload configuration
type InstallerConfig struct {
	URL            string   // Where the installer script is downloaded from
	Repo           string   // Source repository identifier passed to the installer
	ExtraArgs      []string // Appended after the resolved flags
	TimeoutMinutes int
	Verify         VerifyConfig
}

// VerifyConfig represents optional verification of the installer payload.
// All fields are optional; an empty config skips verification entirely.
type VerifyConfig struct {
	SHA256          string // Expected hex digest of the payload
	GPGKeyFile      string // Path to an armored GPG public key
	GPGKeyURL       string // URL of an armored GPG public key
	GPGSignatureURL string // URL of a detached GPG signature over the payload
	MinisignKeyFile string // Path to a minisign public key (.pub)
	MinisignSigURL  string // URL of a detached minisign signature (.minisig)
}

// TargetMap maps a CI platform signal to a compilation target triple.
// Signals without an entry in ByOS resolve to Default, including the
// empty signal when the environment variable is unset.
type TargetMap struct {
	SignalEnv string // Environment variable carrying the platform signal
	ByOS      map[string]string
	Default   string
}

// ComponentConfig represents the host toolchain components a tool needs
// before its build matrix runs (e.g., rustup component add rustfmt).
type ComponentConfig struct {
	Manager string   // Toolchain manager binary, e.g. "rustup"
	AddArgs []string // Subcommand for adding a component, e.g. ["component", "add"]
	Names   []string // Components to add, in order
}

// Invocation is the parameter tuple handed to the external installer.
// Constructed once per run and never mutated.
type Invocation struct {
	Force  bool
	Repo   string
	Tag    string
	Target string
}

// Flags renders the invocation as installer command-line flags.
func (i Invocation) Flags() []string {
	flags := make([]string, 0, 7)
	if i.Force {
		flags = append(flags, "--force")
	}
	flags = append(flags, "--git", i.Repo, "--tag", i.Tag, "--target", i.Target)
	return flags
}
