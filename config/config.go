package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Service struct {
	URL string `mapstructure:"url" yaml:"url"`
}
type Services struct {
	Annotator        Service `mapstructure:"annotator" yaml:"annotator"`
	Readability      Service `mapstructure:"readability" yaml:"readability"`
	LexicalDiversity Service `mapstructure:"lexical_diversity" yaml:"lexical_diversity"`
	// Redis is optional; an empty URL disables the annotation cache.
	Redis Service `mapstructure:"redis" yaml:"redis"`
}
type Features struct {
	Workers             int     `mapstructure:"workers" yaml:"workers"`
	BatchSize           int     `mapstructure:"batch_size" yaml:"batch_size"`
	TargetName          string  `mapstructure:"target_name" yaml:"target_name"`
	ExcludeSelfMentions bool    `mapstructure:"exclude_self_mentions" yaml:"exclude_self_mentions"`
	MTLDThreshold       float64 `mapstructure:"mtld_threshold" yaml:"mtld_threshold"`
	Timeout             int     `mapstructure:"timeout" yaml:"timeout"` // sec, per segment
}
type Debate struct {
	Date     string `mapstructure:"date" yaml:"date"`
	URL      string `mapstructure:"url" yaml:"url"`
	Location string `mapstructure:"location" yaml:"location"`
}
type Root struct {
	Pipeline struct {
		Name      string `mapstructure:"name" yaml:"name"`
		Version   string `mapstructure:"version" yaml:"version"`
		LogLvl    string `mapstructure:"log_level" yaml:"log_level"`
		LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	} `mapstructure:"pipeline" yaml:"pipeline"`
	Services Services `mapstructure:"services" yaml:"services"`
	Features Features `mapstructure:"features" yaml:"features"`
	Paths    struct {
		Data    string `mapstructure:"data" yaml:"data"`
		Names   string `mapstructure:"names" yaml:"names"`
		Outputs string `mapstructure:"outputs" yaml:"outputs"`
	} `mapstructure:"paths" yaml:"paths"`
	Debates []Debate `mapstructure:"debates" yaml:"debates"`
}

const EnvPrefix = "PRESIDENTIAL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "presidential")
	v.SetDefault("pipeline.version", "0.1.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("services.annotator.url", "http://localhost:8001")
	v.SetDefault("services.readability.url", "http://localhost:8002")
	v.SetDefault("services.lexical_diversity.url", "http://localhost:8002")
	v.SetDefault("services.redis.url", "")
	v.SetDefault("features.workers", 4)
	v.SetDefault("features.batch_size", 64)
	v.SetDefault("features.target_name", "Trump")
	v.SetDefault("features.exclude_self_mentions", false)
	v.SetDefault("features.mtld_threshold", 0.72)
	v.SetDefault("features.timeout", 30)
	v.SetDefault("paths.data", "data")
	v.SetDefault("paths.names", "")
	v.SetDefault("paths.outputs", "outputs")
}

// Load reads the configuration file for CONFIG_ENV (dev by default),
// falling back to defaults when no file is found. Environment variables
// prefixed with PRESIDENTIAL_ override file values.
func Load() (*Root, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return LoadFile("")
}

// LoadFile reads one explicit configuration file. An empty path yields
// defaults plus environment overrides.
func LoadFile(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Root) validate() error {
	if r.Features.Workers < 1 {
		return errors.New("features.workers must be positive")
	}
	if r.Features.BatchSize < 1 {
		return errors.New("features.batch_size must be positive")
	}
	if r.Features.MTLDThreshold <= 0 || r.Features.MTLDThreshold >= 1 {
		return fmt.Errorf("features.mtld_threshold out of range: %v", r.Features.MTLDThreshold)
	}
	return nil
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
