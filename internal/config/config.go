package config

import (
	"time"

	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/log"
)

// Config is the full caller-facing option surface, validated once at entry.
// Mutual-exclusion and required-if constraints live in Validate; field-level
// constraints are expressed as validator tags.
type Config struct {
	Device   DeviceConfig   `yaml:"device" mapstructure:"device"`
	Run      RunConfig      `yaml:"run" mapstructure:"run"`
	Settings SettingsConfig `yaml:"settings" mapstructure:"settings"`
}

type DeviceConfig struct {
	Host     string        `yaml:"host" mapstructure:"host" validate:"required"`
	Port     int           `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	User     string        `yaml:"user" mapstructure:"user" validate:"required"`
	Password string        `yaml:"password" mapstructure:"password"`
	KeyFile  string        `yaml:"key_file" mapstructure:"key_file"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// CommandInterval throttles command submission; devices drop input
	// when configuration is pasted faster than the CLI consumes it.
	CommandInterval time.Duration `yaml:"command_interval" mapstructure:"command_interval"`
}

type RunConfig struct {
	// Lines is the ordered set of configuration commands. The commands
	// must match the device running-config syntax exactly; abbreviated
	// commands are rewritten by the device parser and defeat idempotence.
	Lines []string `yaml:"lines" mapstructure:"lines"`

	// IntendedConfig is checked for presence within Lines after the run;
	// it is verified, never applied.
	IntendedConfig []string `yaml:"intended_config" mapstructure:"intended_config"`

	// Parents is a single-level section context the lines are configured
	// under. Mutually exclusive with FilePath.
	Parents []string `yaml:"parents" mapstructure:"parents"`

	// FilePath sources the candidate from a file instead of Lines; each
	// non-comment file line is pushed to the device individually.
	FilePath string `yaml:"file_path" mapstructure:"file_path"`

	Before []string `yaml:"before" mapstructure:"before"`
	After  []string `yaml:"after" mapstructure:"after"`

	Match              domain.MatchMode   `yaml:"match" mapstructure:"match"`
	Replace            domain.ReplaceMode `yaml:"replace" mapstructure:"replace"`
	MultilineDelimiter string             `yaml:"multiline_delimiter" mapstructure:"multiline_delimiter"`

	// RunningConfig, when set, stands in for the fetched running config
	// text wherever the raw contents are needed (backup).
	RunningConfig string `yaml:"running_config" mapstructure:"running_config"`

	Defaults bool `yaml:"defaults" mapstructure:"defaults"`

	Backup        bool          `yaml:"backup" mapstructure:"backup"`
	BackupOptions BackupOptions `yaml:"backup_options" mapstructure:"backup_options"`

	SaveWhen domain.SaveWhen `yaml:"save_when" mapstructure:"save_when"`

	DiffAgainst     string   `yaml:"diff_against" mapstructure:"diff_against"`
	DiffIgnoreLines []string `yaml:"diff_ignore_lines" mapstructure:"diff_ignore_lines"`

	// CheckMode computes and reports intended actions without mutating
	// device state.
	CheckMode bool `yaml:"check_mode" mapstructure:"check_mode"`
}

type BackupOptions struct {
	Filename string `yaml:"filename" mapstructure:"filename"`
	DirPath  string `yaml:"dir_path" mapstructure:"dir_path"`
}

type SettingsConfig struct {
	LogLevel     log.Level  `yaml:"log_level" mapstructure:"log_level"`
	LogFormat    log.Format `yaml:"log_format" mapstructure:"log_format"`
	ReporterType string     `yaml:"reporter" mapstructure:"reporter"`
	NoColor      bool       `yaml:"no_color" mapstructure:"no_color"`
}

func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Port:            22,
			Timeout:         30 * time.Second,
			CommandInterval: 100 * time.Millisecond,
		},
		Run: RunConfig{
			Match:              domain.MatchLine,
			Replace:            domain.ReplaceLine,
			MultilineDelimiter: "/n",
			SaveWhen:           domain.SaveNever,
		},
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			ReporterType: "text",
		},
	}
}
