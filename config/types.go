package config

import (
	"github.com/grovetools/tablaunch/logging"
)

// DefaultTerminalProfile is the profile used when none is configured.
const DefaultTerminalProfile = "PowerShell"

// FlagDefinition describes a flag the launcher knows about.
type FlagDefinition struct {
	Name        string
	Label       string
	Description string
}

// BuiltInFlags are offered as global flags, all disabled by default.
var BuiltInFlags = []FlagDefinition{
	{
		Name:        "--dangerously-skip-permissions",
		Label:       "Skip Permissions",
		Description: "Skip the permission prompt for tool use (use with caution)",
	},
	{
		Name:        "--verbose",
		Label:       "Verbose Output",
		Description: "Enable verbose logging output",
	},
}

// Config is the top-level structure of tablaunch.yml.
type Config struct {
	// Executable is the program to launch. Empty means detect it.
	Executable      string       `yaml:"executable,omitempty" toml:"executable,omitempty" validate:"omitempty,safepath"`
	TerminalProfile string       `yaml:"terminal_profile" toml:"terminal_profile" validate:"safeprofile"`
	RemoteControl   bool         `yaml:"remote_control" toml:"remote_control"`
	GlobalFlags     []GlobalFlag `yaml:"global_flags" toml:"global_flags" validate:"dive"`
	CustomFlags     []string     `yaml:"custom_flags,omitempty" toml:"custom_flags,omitempty" validate:"dive,safeflag"`
	// Backends lists launch strategies in the order they are tried.
	Backends []string       `yaml:"backends,omitempty" toml:"backends,omitempty" validate:"dive,oneof=wt tmux pwsh"`
	Projects []Project      `yaml:"projects,omitempty" toml:"projects,omitempty" validate:"dive"`
	Logging  logging.Config `yaml:"logging" toml:"logging"`
}

// GlobalFlag is a flag applied to every project unless overridden.
type GlobalFlag struct {
	Name    string `yaml:"name" toml:"name" validate:"required,safeflag"`
	Enabled bool   `yaml:"enabled" toml:"enabled"`
}

// Project is a named launch target.
type Project struct {
	Name string `yaml:"name" toml:"name" validate:"required"`
	Path string `yaml:"path" toml:"path" validate:"required,safepath"`
	// FlagOverrides force individual global or custom flags on or off.
	FlagOverrides map[string]bool `yaml:"flag_overrides,omitempty" toml:"flag_overrides,omitempty" validate:"dive,keys,safeflag,endkeys"`
	// PreLaunchCommand runs in the same shell before the program. It is
	// not checked for shell metacharacters.
	PreLaunchCommand string `yaml:"pre_launch_command,omitempty" toml:"pre_launch_command,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset field with its default.
func (c *Config) SetDefaults() {
	if c.TerminalProfile == "" {
		c.TerminalProfile = DefaultTerminalProfile
	}
	if c.GlobalFlags == nil {
		c.GlobalFlags = make([]GlobalFlag, len(BuiltInFlags))
		for i, def := range BuiltInFlags {
			c.GlobalFlags[i] = GlobalFlag{Name: def.Name}
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Stderr == "" {
		c.Logging.Stderr = "auto"
	}
}

// Project returns the project named name.
func (c *Config) Project(name string) (*Project, bool) {
	for i := range c.Projects {
		if c.Projects[i].Name == name {
			return &c.Projects[i], true
		}
	}
	return nil, false
}

// ResolveFlags returns the effective flags for one launch: enabled global
// flags first, then custom flags. An override entry wins over the global
// default; custom flags are on unless overridden to false.
func (c *Config) ResolveFlags(overrides map[string]bool) []string {
	var flags []string
	for _, gf := range c.GlobalFlags {
		enabled := gf.Enabled
		if v, ok := overrides[gf.Name]; ok {
			enabled = v
		}
		if enabled {
			flags = append(flags, gf.Name)
		}
	}
	for _, cf := range c.CustomFlags {
		enabled := true
		if v, ok := overrides[cf]; ok {
			enabled = v
		}
		if enabled {
			flags = append(flags, cf)
		}
	}
	return flags
}
