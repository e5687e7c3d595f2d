package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	Model           string
	BaseURL         string
	APIKey          string
	CaptionLanguage string
	CaptionFallback bool
	FetchTimeout    time.Duration
	ModelTimeout    time.Duration
	HistoryLimit    int
	Prompt          string
	Verbose         bool
	Quiet           bool
	LogFile         bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
	TempDir   string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig creates config.toml in the config directory if missing
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt creates prompt.txt in the config directory if missing
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig loads .env, the XDG config file and the environment
func InitConfig() *Config {
	// .env is optional, existing environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error reading .env file: %v\n", err)
	}

	configDir := filepath.Join(xdg.ConfigHome, "ytchat")
	v := NewViper(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := ConfigFromViper(v, configDir, filepath.Join(xdg.CacheHome, "ytchat"))

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// NewViper creates a viper instance with defaults, config paths and env bindings
func NewViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("base_url", "")
	v.SetDefault("caption_language", "")
	v.SetDefault("caption_fallback", true)
	v.SetDefault("fetch_timeout", 2*time.Minute)
	v.SetDefault("model_timeout", 2*time.Minute)
	v.SetDefault("history_limit", 0)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("log_file", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("YTCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The key is accepted from the provider specific variables as well
	_ = v.BindEnv("api_key", "YTCHAT_API_KEY", "OPENAI_API_KEY", "GROQ_API_KEY")
	_ = v.BindEnv("model", "YTCHAT_MODEL", "GROQ_LLM_MODEL")

	return v
}

// ConfigFromViper builds the Config struct from a loaded viper instance
func ConfigFromViper(v *viper.Viper, configDir, cacheDir string) *Config {
	return &Config{
		Model:           v.GetString("model"),
		BaseURL:         v.GetString("base_url"),
		APIKey:          v.GetString("api_key"),
		CaptionLanguage: v.GetString("caption_language"),
		CaptionFallback: v.GetBool("caption_fallback"),
		FetchTimeout:    v.GetDuration("fetch_timeout"),
		ModelTimeout:    v.GetDuration("model_timeout"),
		HistoryLimit:    v.GetInt("history_limit"),
		Prompt:          v.GetString("prompt"),
		Verbose:         v.GetBool("verbose"),
		Quiet:           v.GetBool("quiet"),
		LogFile:         v.GetBool("log_file"),

		ConfigDir: configDir,
		CacheDir:  cacheDir,
		TempDir:   filepath.Join(cacheDir, "captions"),
	}
}

// CaptionOptions returns the caption selection for the stateful agent
func (c *Config) CaptionOptions() CaptionOptions {
	return CaptionOptions{Language: c.CaptionLanguage, Fallback: c.CaptionFallback}
}
