// Package config loads the notifier's environment-sourced configuration once
// at process start.
package config

import (
	"fmt"
	"strings"
)

// Environment variable names.
const (
	EnvTopicARN          = "SNS_TOPIC_ARN"
	EnvSlackEndpoint     = "SLACK_ENDPOINT"
	EnvSlackNotification = "SLACK_NOTIFICATION"
)

// Config holds process-wide settings. Loaded once at startup, immutable
// afterwards, passed by value into the handler wiring.
type Config struct {
	TopicARN          string
	SlackEndpoint     string
	SlackNotification bool
}

// Load reads configuration through getenv (os.Getenv in production, a map
// lookup in tests). Invalid configuration is an error for the caller to treat
// as fatal at startup; it is never surfaced per-invocation.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		TopicARN:      getenv(EnvTopicARN),
		SlackEndpoint: getenv(EnvSlackEndpoint),
	}

	if cfg.TopicARN == "" {
		return Config{}, fmt.Errorf("%s environment variable is required", EnvTopicARN)
	}

	enabled, err := ParseFlag(getenv(EnvSlackNotification))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvSlackNotification, err)
	}
	cfg.SlackNotification = enabled

	if cfg.SlackNotification && cfg.SlackEndpoint == "" {
		return Config{}, fmt.Errorf("%s is required when %s is enabled", EnvSlackEndpoint, EnvSlackNotification)
	}

	return cfg, nil
}

// ParseFlag parses a boolean flag from its environment string form. Accepted
// true forms: 1, t, true, y, yes, on. False forms: 0, f, false, n, no, off.
// Matching is case-insensitive and the empty string is false; anything else
// is an error rather than a silent default.
func ParseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "", "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean flag %q", value)
}
