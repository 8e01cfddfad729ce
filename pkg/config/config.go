// Package config loads YAML application configuration with environment
// variable overrides for values like listen addresses and store URLs.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:-default} placeholders.
var envPattern = regexp.MustCompile(`\$\{(\w+)(?::-([^}]*))?\}`)

// Load reads a YAML file into T, expanding ${VAR} and ${VAR:-default}
// placeholders from the environment before unmarshalling.
//
// Example:
//
//	type AppConfig struct {
//	    Addr     string `yaml:"addr"`
//	    RedisURL string `yaml:"redis_url"`
//	}
//	cfg, err := config.Load[AppConfig]("config.yaml")
func Load[T any](path string) (T, error) {
	var cfg T

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := envPattern.ReplaceAllStringFunc(string(raw), func(m string) string {
		groups := envPattern.FindStringSubmatch(m)
		if v, ok := os.LookupEnv(groups[1]); ok {
			return v
		}
		return groups[2]
	})

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on failure. Use at startup only.
func MustLoad[T any](path string) T {
	cfg, err := Load[T](path)
	if err != nil {
		panic(err)
	}
	return cfg
}
