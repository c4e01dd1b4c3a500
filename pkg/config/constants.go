package config

// Default values for tracestack
const (
	// Handler defaults
	DefaultEngine   = "default" // Google restricted to Stack Overflow questions
	DefaultLanguage = "go"      // Tag appended to every query
	DefaultSkip     = false     // Ask before opening the browser

	// Logging defaults
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stderr"

	// Config file lookup
	ConfigName = "tracestack" // tracestack.yaml in . or $HOME
	ConfigType = "yaml"
	ConfigFile = ConfigName + "." + ConfigType
	EnvPrefix  = "TRACESTACK"
)
