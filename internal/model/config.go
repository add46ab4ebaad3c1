package model

import "time"

// Config holds operational settings only: how the service talks to the
// network, not what it analyzes. Analysis parameters always arrive with the
// request (AnalysisRequest).
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Politeness PolitenessConfig `yaml:"politeness" mapstructure:"politeness"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the web surface
type ServerConfig struct {
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// HTTPConfig configures document fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// SearchConfig configures the search provider client
type SearchConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Location string        `yaml:"location" mapstructure:"location"`
	Site     string        `yaml:"site" mapstructure:"site"` // Appended as a site: restriction
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// PolitenessConfig configures optional fetch politeness. Both settings are
// off by default: the analysis loop is sequential and bounded, so the
// original behavior is one plain GET per candidate.
type PolitenessConfig struct {
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 = unlimited
}

// OutputConfig configures diagnostics
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: "127.0.0.1:8080",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Mozilla/5.0",
			MaxBodyBytes: 4_000_000,
		},
		Search: SearchConfig{
			BaseURL:  "https://serpapi.com",
			Location: "United States",
			Site:     "patents.google.com",
			CacheTTL: 15 * time.Minute,
		},
		Politeness: PolitenessConfig{
			RespectRobots:     false,
			RequestsPerSecond: 0,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
