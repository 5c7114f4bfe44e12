package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration for a generation run.
type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Modules     ModulesConfig     `yaml:"modules"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// SiteConfig covers presentation-level settings shared by every page.
type SiteConfig struct {
	Title string `yaml:"title"`
	// FooterMarkdown is extra footer content, rendered to HTML once per run.
	FooterMarkdown string `yaml:"footer_markdown,omitempty"`
	Search         bool   `yaml:"search"`
	Minify         bool   `yaml:"minify"`
}

// InputConfig locates the artifacts the external compiler produced.
type InputConfig struct {
	// Dir is the bundle root. DocumentsDir, NavigationFile, and AssetsDir
	// default to conventional locations beneath it.
	Dir            string `yaml:"dir"`
	DocumentsDir   string `yaml:"documents_dir,omitempty"`
	NavigationFile string `yaml:"navigation_file,omitempty"`
	AssetsDir      string `yaml:"assets_dir,omitempty"`
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
	// CachePath holds the incremental render-cache database. Empty disables
	// incremental builds entirely.
	CachePath string `yaml:"cache_path,omitempty"`
}

// ModulesConfig declares what this run documents and where other bundles live.
type ModulesConfig struct {
	// Documented maps a module display name to its bundle identifier.
	Documented map[string]string `yaml:"documented,omitempty"`
	// ExternalURLs maps a bundle identifier to the base URL hosting its docs.
	ExternalURLs map[string]string `yaml:"external_urls,omitempty"`
}

// DiagnosticsConfig configures optional diagnostic event publishing.
type DiagnosticsConfig struct {
	NATS NATSConfig `yaml:"nats,omitempty"`
}

// NATSConfig is the JetStream diagnostics publisher configuration.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig configures metrics export. TextfilePath, when set, receives
// the run's metrics in Prometheus textfile-collector format.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path,omitempty"`
}

// Load reads configuration from the specified file. A .env/.env.local file,
// when present, is loaded first without overriding the process environment.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			// godotenv never overrides variables already set in the process.
			_ = godotenv.Load(p)
			return
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Input.DocumentsDir == "" && c.Input.Dir != "" {
		c.Input.DocumentsDir = filepath.Join(c.Input.Dir, "data")
	}
	if c.Input.NavigationFile == "" && c.Input.Dir != "" {
		c.Input.NavigationFile = filepath.Join(c.Input.Dir, "navigation.json")
	}
	if c.Input.AssetsDir == "" && c.Input.Dir != "" {
		c.Input.AssetsDir = c.Input.Dir
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
	}
	if c.Diagnostics.NATS.Enabled && c.Diagnostics.NATS.Subject == "" {
		c.Diagnostics.NATS.Subject = "docrender.diagnostics"
	}
}

// SetInputDir replaces the input bundle location and re-derives the
// dependent paths, for command-line overrides applied after Load.
func (c *Config) SetInputDir(dir string) {
	c.Input = InputConfig{Dir: dir}
	c.applyDefaults()
}

func (c *Config) validate() error {
	if c.Input.Dir == "" && c.Input.DocumentsDir == "" {
		return fmt.Errorf("input.dir is required")
	}
	if c.Diagnostics.NATS.Enabled && c.Diagnostics.NATS.URL == "" {
		return fmt.Errorf("diagnostics.nats.url is required when nats diagnostics are enabled")
	}
	return nil
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	example := Config{
		Site: SiteConfig{
			Title:  "My Documentation",
			Search: true,
		},
		Input: InputConfig{
			Dir: "./docs-bundle",
		},
		Output: OutputConfig{
			Directory: "./site",
			Clean:     true,
			CachePath: "./site/.render-cache.db",
		},
		Modules: ModulesConfig{
			Documented:   map[string]string{"Acme": "com.example.acme"},
			ExternalURLs: map[string]string{"com.example.vendor": "https://docs.example.com/vendor"},
		},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	// #nosec G306 -- configuration is not sensitive
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}
