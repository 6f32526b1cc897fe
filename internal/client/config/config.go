package config

import (
	"flag"
	"io"
	"time"
)

// Config holds runtime settings for the gophauth CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags found before
// the subcommand in args. The subcommand and its own arguments are returned
// untouched.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	global, rest, err := splitArgs(args)
	if err != nil {
		return nil, nil, err
	}
	if err := parseJson(cfg, global); err != nil {
		return nil, nil, err
	}
	if err := parseFlags(cfg, global); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

// splitArgs separates global flags from the subcommand that follows them.
func splitArgs(args []string) (global, rest []string, err error) {
	fs := flag.NewFlagSet("global", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("a", "", "")
	fs.Int("timeout", 0, "")
	fs.String("c", "", "")
	fs.String("config", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	rest = fs.Args()
	return args[:len(args)-len(rest)], rest, nil
}
