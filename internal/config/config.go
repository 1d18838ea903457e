package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig   `yaml:"server"`
	SummaryLLM LLMConfig      `yaml:"summary_llm"`
	DiagramLLM LLMConfig      `yaml:"diagram_llm"`
	Pipeline   PipelineConfig `yaml:"pipeline"`
	Database   DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// RequestTimeoutSec bounds the LLM work of a single request. Zero means
	// the default of 120 seconds.
	RequestTimeoutSec int `yaml:"request_timeout_sec"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
}

type PipelineConfig struct {
	// Style selects the prompt set: "research" or "story".
	Style string `yaml:"style"`
	// OutputDir is where CLI runs place the HTML artifact when -output is
	// a bare filename.
	OutputDir string `yaml:"output_dir"`
}

type DatabaseConfig struct {
	// DSN enables the run-history store when non-empty.
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
