package logging

// Config defines the logging section of tablaunch.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the TABLAUNCH_LOG_LEVEL environment variable.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`

	// File overrides the log file location. It must stay inside the
	// application data directory.
	File string `yaml:"file" validate:"omitempty,safepath"`

	// Stderr controls when log lines are mirrored to stderr.
	// Can be "auto" (default), "always", or "never".
	Stderr string `yaml:"stderr" validate:"omitempty,oneof=auto always never"`

	// ReportCaller, if true, includes the file and line in each record.
	ReportCaller bool `yaml:"report_caller"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	DisableTimestamp bool
	// ShowComponent adds the component name after the level.
	ShowComponent bool
}
