// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Verbose flags echo every remote operation and raise the log level to debug
	Verbose      = "verbose"
	VerboseShort = "v"

	// Delete and Brutal are aliases: both permit removing remote entries whose local counterpart is gone
	Delete      = "delete"
	DeleteShort = "d"
	Brutal      = "brutal"
	BrutalShort = "b"

	// Config flags bypass the upward discovery of the project file
	Config      = "config"
	ConfigShort = "c"

	// Get requests the download direction (remote -> local)
	Get      = "get"
	GetShort = "g"

	// Transport overrides the transport selected by the project file or tool settings
	Transport      = "transport"
	TransportShort = "t"
)
