// Package auth assembles gitwire client options from environment variables
// and command-line flags.
package auth

import (
	"os"

	"github.com/gitwire-go/gitwire"
)

// Config holds authentication configuration.
type Config struct {
	Token    string
	Username string
	Password string
}

// FromEnvironment reads authentication from environment variables.
// Priority: GITWIRE_TOKEN > GITHUB_TOKEN > GITLAB_TOKEN.
func FromEnvironment() *Config {
	token := os.Getenv("GITWIRE_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		token = os.Getenv("GITLAB_TOKEN")
	}

	return &Config{
		Token:    token,
		Username: os.Getenv("GITWIRE_USERNAME"),
		Password: os.Getenv("GITWIRE_PASSWORD"),
	}
}

// Merge combines environment auth with command-line flags. Flags take
// precedence over environment variables.
func (c *Config) Merge(flagToken, flagUsername, flagPassword string) {
	if flagToken != "" {
		c.Token = flagToken
	}
	if flagUsername != "" {
		c.Username = flagUsername
	}
	if flagPassword != "" {
		c.Password = flagPassword
	}
}

// ToOptions converts the authentication config into gitwire client options.
func (c *Config) ToOptions() []gitwire.Option {
	var opts []gitwire.Option

	if c.Token != "" {
		opts = append(opts, gitwire.WithTokenAuth(c.Token))
	} else if c.Username != "" && c.Password != "" {
		opts = append(opts, gitwire.WithBasicAuth(c.Username, c.Password))
	}

	return opts
}

// HasAuth reports whether any authentication is configured.
func (c *Config) HasAuth() bool {
	return c.Token != "" || (c.Username != "" && c.Password != "")
}
