// Package config loads mathsheet settings from the settings file, the
// environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/session"
)

// Settings is the on-disk configuration.
type Settings struct {
	// Locale selects message and document language: "vi" or "en".
	Locale string `yaml:"locale" validate:"oneof=vi en"`

	// OutputDir is where exported worksheets are written.
	OutputDir string `yaml:"output_dir"`

	// Staleness picks which result is shown when requests overlap:
	// "latest" (the most recent request) or "last-resolved".
	Staleness string `yaml:"staleness" validate:"oneof=latest last-resolved"`

	Log        LogSettings        `yaml:"log"`
	Defaults   WorksheetDefaults  `yaml:"defaults"`
	Generation GenerationSettings `yaml:"generation"`
	LLM        LLMSettings        `yaml:"llm"`
	Server     ServerSettings     `yaml:"server"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"` // used by the TUI; empty means the data dir
}

// WorksheetDefaults pre-fills the worksheet form.
type WorksheetDefaults struct {
	Min            int      `yaml:"min" validate:"gte=0"`
	Max            int      `yaml:"max" validate:"gtefield=Min"`
	Count          int      `yaml:"count" validate:"gte=1,lte=200"`
	Operations     []string `yaml:"operations" validate:"min=1,dive,oneof=add subtract multiply divide"`
	NumOperations  int      `yaml:"num_operations" validate:"oneof=1 2"`
	UseParentheses bool     `yaml:"use_parentheses"`
}

// GenerationSettings tunes the generation call.
type GenerationSettings struct {
	GradeLevel  int           `yaml:"grade_level" validate:"gte=1,lte=12"`
	Temperature float64       `yaml:"temperature" validate:"gte=0,lte=1"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gte=256"`
	StrictCheck bool          `yaml:"strict_check"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=1s"`
}

// LLMSettings pins a provider and model. Empty values fall back to
// environment discovery.
type LLMSettings struct {
	Provider string `yaml:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
}

// ServerSettings configures `mathsheet serve`.
type ServerSettings struct {
	Addr string `yaml:"addr" validate:"hostname_port"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Locale:    "vi",
		Staleness: "latest",
		Log: LogSettings{
			Level: "info",
		},
		Defaults: WorksheetDefaults{
			Min:           1,
			Max:           100,
			Count:         20,
			Operations:    []string{"add", "subtract"},
			NumOperations: 1,
		},
		Generation: GenerationSettings{
			GradeLevel:  3,
			Temperature: 0.8,
			MaxTokens:   16384,
			Timeout:     60 * time.Second,
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:8080",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Load reads settings from path over the defaults, then applies
// MATHSHEET_* environment overrides and validates the result. A missing
// file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read settings: %w", err)
		default:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parse settings %s: %w", path, err)
			}
		}
	}

	s.applyEnvOverrides()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes s to path as YAML, creating the directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("MATHSHEET_LOCALE"); v != "" {
		s.Locale = v
	}
	if v := os.Getenv("MATHSHEET_OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("MATHSHEET_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("MATHSHEET_STRICT_CHECK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Generation.StrictCheck = b
		}
	}
	if v := os.Getenv("MATHSHEET_SERVER_ADDR"); v != "" {
		s.Server.Addr = v
	}
}

// LoadDotEnv loads .env from the working directory and the settings
// directory. Variables already set in the environment win.
func LoadDotEnv() error {
	var files []string
	for _, p := range []string{".env", filepath.Join(Dir(), ".env")} {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Dir returns $XDG_CONFIG_HOME/mathsheet, or the platform config dir.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mathsheet")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mathsheet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mathsheet")
}

// DefaultPath returns MATHSHEET_CONFIG or Dir()/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("MATHSHEET_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// SessionLocale returns the locale as a session.Locale.
func (s *Settings) SessionLocale() session.Locale {
	return session.ParseLocale(s.Locale)
}

// Policy returns the configured staleness policy.
func (s *Settings) Policy() session.Policy {
	if s.Staleness == "last-resolved" {
		return session.LastResolvedWins
	}
	return session.LatestRequestWins
}

// Form returns the worksheet form pre-filled from Defaults.
func (s *Settings) Form() problemgen.FormInput {
	ops, _ := problemgen.OperationsFromKeys(s.Defaults.Operations)
	return problemgen.FormInput{
		Min:            strconv.Itoa(s.Defaults.Min),
		Max:            strconv.Itoa(s.Defaults.Max),
		Count:          strconv.Itoa(s.Defaults.Count),
		Operations:     ops,
		UseParentheses: s.Defaults.UseParentheses,
		NumOperations:  s.Defaults.NumOperations,
	}
}

// GeneratorOptions converts Generation into problemgen options.
func (s *Settings) GeneratorOptions() problemgen.Options {
	opts := problemgen.Options{
		MaxTokens:   s.Generation.MaxTokens,
		Temperature: s.Generation.Temperature,
		GradeLevel:  s.Generation.GradeLevel,
		Timeout:     s.Generation.Timeout,
	}
	if s.Generation.StrictCheck {
		opts.Validators = problemgen.StrictValidators()
	}
	return opts
}

// LLMConfig resolves the provider configuration. Precedence, lowest
// first: built-in defaults, API keys discovered in the environment, the
// settings file, MATHSHEET_* variables.
func (s *Settings) LLMConfig() llm.Config {
	cfg, found := llm.DiscoverConfig()
	if !found {
		cfg = llm.DefaultConfig()
	}
	fillStandardKeys(&cfg)

	if s.LLM.Provider != "" {
		cfg.Provider = s.LLM.Provider
	}
	if s.LLM.Model != "" {
		cfg.SetModel(s.LLM.Model)
	}
	if s.LLM.BaseURL != "" {
		switch cfg.Provider {
		case llm.ProviderOpenAI:
			cfg.OpenAI.BaseURL = s.LLM.BaseURL
		case llm.ProviderOpenRouter:
			cfg.OpenRouter.BaseURL = s.LLM.BaseURL
		}
	}
	if s.Generation.Timeout > 0 {
		cfg.Timeout = s.Generation.Timeout
	}

	llm.ApplyEnv(&cfg)
	return cfg
}

// fillStandardKeys copies the vendors' usual key variables into every
// provider slot, so a settings file can pin a provider without repeating
// the key.
func fillStandardKeys(cfg *llm.Config) {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" && cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = k
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" && cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = k
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" && cfg.Anthropic.APIKey == "" {
		cfg.Anthropic.APIKey = k
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" && cfg.OpenRouter.APIKey == "" {
		cfg.OpenRouter.APIKey = k
	}
}
