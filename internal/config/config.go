package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/service/download"
)

// Config holds all configuration settings.
type Config struct {
	// SpotifyClientID is the client id of the Spotify application used for catalog access.
	SpotifyClientID string `mapstructure:"spotify_client_id" yaml:"spotify_client_id"`
	// SpotifyClientSecret is the client secret of the Spotify application.
	SpotifyClientSecret string `mapstructure:"spotify_client_secret" yaml:"spotify_client_secret"`
	// OutputPath is the directory for exported tables or downloaded audio.
	// Empty selects the working directory for exports and "<table>_download" for downloads.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// AudioFormat is the requested output container: mp3, flac or wav.
	AudioFormat string `mapstructure:"audio_format" yaml:"audio_format"`
	// Bitrate is the mp3 bitrate in kbps. Ignored for other formats.
	Bitrate int `mapstructure:"bitrate" yaml:"bitrate"`
	// Overwrite is the policy for existing files: skip or overwrite.
	Overwrite string `mapstructure:"overwrite" yaml:"overwrite"`
	// MaxConcurrentDownloads is the worker pool size, 1 to 4.
	MaxConcurrentDownloads int `mapstructure:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// FFmpegPath is the ffmpeg executable name or path.
	FFmpegPath string `mapstructure:"ffmpeg_path" yaml:"ffmpeg_path"`
	// YtDlpPath is the yt-dlp executable name or path.
	YtDlpPath string `mapstructure:"ytdlp_path" yaml:"ytdlp_path"`
	// ProgressInterval is how often queued progress events are flushed to the terminal.
	ProgressInterval string `mapstructure:"progress_interval" yaml:"progress_interval"`
	// CoverTimeout bounds a single cover-art download.
	CoverTimeout string `mapstructure:"cover_timeout" yaml:"cover_timeout"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
	// ParsedProgressInterval is the parsed ProgressInterval.
	ParsedProgressInterval time.Duration `yaml:"-"`
	// ParsedCoverTimeout is the parsed CoverTimeout.
	ParsedCoverTimeout time.Duration `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".spotisaver.yaml"

	// envPrefix prefixes environment overrides, e.g. SPOTISAVER_AUDIO_FORMAT.
	envPrefix = "SPOTISAVER"
)

// Supported option values. The download service owns them.
const (
	FormatMP3  = download.FormatMP3
	FormatFLAC = download.FormatFLAC
	FormatWAV  = download.FormatWAV

	OverwriteSkip   = string(download.OverwriteSkip)
	OverwriteAlways = string(download.OverwriteAlways)
)

//nolint:gochecknoglobals // Immutable lookup tables used as constants.
var (
	// SupportedFormats lists the accepted audio formats.
	SupportedFormats = []string{FormatMP3, FormatFLAC, FormatWAV}
	// SupportedOverwritePolicies lists the accepted overwrite policies.
	SupportedOverwritePolicies = []string{OverwriteSkip, OverwriteAlways}

	defaults = map[string]any{
		"output_path":              "",
		"audio_format":             FormatMP3,
		"bitrate":                  320,
		"overwrite":                OverwriteSkip,
		"max_concurrent_downloads": 2,
		"log_level":                "info",
		"ffmpeg_path":              "ffmpeg",
		"ytdlp_path":               "yt-dlp",
		"progress_interval":        "100ms",
		"cover_timeout":            "15s",
	}
)

// Static error definitions for better error handling.
var (
	// ErrValidation is the parent of every configuration validation error.
	ErrValidation = errors.New("invalid configuration")
	// ErrEmptyClientID indicates that the Spotify client id is missing.
	ErrEmptyClientID = fmt.Errorf("%w: spotify_client_id cannot be empty", ErrValidation)
	// ErrEmptyClientSecret indicates that the Spotify client secret is missing.
	ErrEmptyClientSecret = fmt.Errorf("%w: spotify_client_secret cannot be empty", ErrValidation)
	// ErrInvalidFormat indicates that the audio format is not supported.
	ErrInvalidFormat = fmt.Errorf("%w: unsupported audio_format", ErrValidation)
	// ErrInvalidBitrate indicates that the mp3 bitrate is not supported.
	ErrInvalidBitrate = fmt.Errorf("%w: unsupported bitrate", ErrValidation)
	// ErrInvalidOverwrite indicates that the overwrite policy is unknown.
	ErrInvalidOverwrite = fmt.Errorf("%w: unsupported overwrite policy", ErrValidation)
	// ErrInvalidConcurrentDownloads indicates that the worker count is out of range.
	ErrInvalidConcurrentDownloads = fmt.Errorf("%w: max_concurrent_downloads out of range", ErrValidation)
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = fmt.Errorf("%w: unknown log level", ErrValidation)
	// ErrInvalidDuration indicates that a duration setting is not positive.
	ErrInvalidDuration = fmt.Errorf("%w: duration must be positive", ErrValidation)
	// ErrEmptyToolPath indicates that an external tool path is empty.
	ErrEmptyToolPath = fmt.Errorf("%w: tool path cannot be empty", ErrValidation)
)

// LoadConfig loads configuration from a YAML file, environment variables and defaults.
// A missing default file is tolerated; a missing explicitly named file is an error.
func LoadConfig(configFilename string) (*Config, error) {
	viper.Reset()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The catalog credentials are conventionally exported without the prefix.
	_ = viper.BindEnv("spotify_client_id", envPrefix+"_SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID")
	_ = viper.BindEnv("spotify_client_secret", envPrefix+"_SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET")

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		if isExplicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the download and logging settings and fills the parsed fields.
// Credentials are checked separately by ValidateCredentials, since not every command needs them.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	cfg.AudioFormat = strings.ToLower(strings.TrimSpace(cfg.AudioFormat))
	if !slices.Contains(SupportedFormats, cfg.AudioFormat) {
		return fmt.Errorf("%w: '%s', expected one of %v", ErrInvalidFormat, cfg.AudioFormat, SupportedFormats)
	}

	if cfg.AudioFormat == FormatMP3 && !slices.Contains(download.SupportedBitrates, cfg.Bitrate) {
		return fmt.Errorf("%w: %d, expected one of %v", ErrInvalidBitrate, cfg.Bitrate, download.SupportedBitrates)
	}

	cfg.Overwrite = strings.ToLower(strings.TrimSpace(cfg.Overwrite))
	if !slices.Contains(SupportedOverwritePolicies, cfg.Overwrite) {
		return fmt.Errorf("%w: '%s', expected one of %v", ErrInvalidOverwrite, cfg.Overwrite, SupportedOverwritePolicies)
	}

	if cfg.MaxConcurrentDownloads < download.MinWorkers || cfg.MaxConcurrentDownloads > download.MaxWorkers {
		return fmt.Errorf("%w: %d, must be between %d and %d",
			ErrInvalidConcurrentDownloads, cfg.MaxConcurrentDownloads, download.MinWorkers, download.MaxWorkers)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if strings.TrimSpace(cfg.FFmpegPath) == "" || strings.TrimSpace(cfg.YtDlpPath) == "" {
		return ErrEmptyToolPath
	}

	var err error

	cfg.ParsedProgressInterval, err = parsePositiveDuration("progress_interval", cfg.ProgressInterval)
	if err != nil {
		return err
	}

	cfg.ParsedCoverTimeout, err = parsePositiveDuration("cover_timeout", cfg.CoverTimeout)
	if err != nil {
		return err
	}

	return nil
}

// ValidateCredentials checks that catalog credentials are present.
func ValidateCredentials(cfg *Config) error {
	cfg.SpotifyClientID = strings.TrimSpace(cfg.SpotifyClientID)
	if cfg.SpotifyClientID == "" {
		return ErrEmptyClientID
	}

	cfg.SpotifyClientSecret = strings.TrimSpace(cfg.SpotifyClientSecret)
	if cfg.SpotifyClientSecret == "" {
		return ErrEmptyClientSecret
	}

	return nil
}

func parsePositiveDuration(key, value string) (time.Duration, error) {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, key)
	}

	return parsed, nil
}

// SaveConfig writes the credentials back to the configuration file,
// preserving the order and comments of the existing keys.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	originalContent, err := os.ReadFile(configFile) //nolint:gosec // Path comes from the user's own flag.
	if err != nil {
		return handleMissingConfigFile(configFile, cfg, err)
	}

	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	setStringInNode(&node, "spotify_client_id", cfg.SpotifyClientID)
	setStringInNode(&node, "spotify_client_secret", cfg.SpotifyClientSecret)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile writes a complete config file when none exists yet.
func handleMissingConfigFile(configFile string, cfg *Config, err error) error {
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// setStringInNode sets key to value in the top-level mapping, appending the key when absent.
func setStringInNode(node *yaml.Node, key, value string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Key-value pairs are stored as alternating nodes.
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value != key {
			continue
		}

		valueNode := mapNode.Content[i+1]
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!str"
		valueNode.Value = value

		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
	)
}
