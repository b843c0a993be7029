// Package config loads server settings from flags, falling back to
// CHESS_* environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

const envPrefix = "CHESS_"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     string
	LogFormat    string
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	env := func(name, def string) string {
		if v := getenv(envPrefix + name); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", env("ADDR", cfg.Addr), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", env("ALLOW_ORIGINS", cfg.AllowOrigins), "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", env("LOG_LEVEL", cfg.LogLevel), "debug, info, warn, error or fatal")
	fs.StringVar(&cfg.LogFormat, "log-format", env("LOG_FORMAT", cfg.LogFormat), "text or json")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, cfg.Validate()
}

// FromEnvironment is Load over the process arguments and environment.
func FromEnvironment() (Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	}
	if len(c.Origins()) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalid)
	}
	for _, o := range c.Origins() {
		if o == "*" {
			return fmt.Errorf("%w: wildcard origin cannot be used with credentials", ErrInvalid)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Origins splits AllowOrigins into trimmed, non-empty entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Logger builds the root logger writing to w.
func (c Config) Logger(w io.Writer) *log.Logger {
	var h log.Handler = text.New(w)
	if c.LogFormat == "json" {
		h = json.New(w)
	}
	return &log.Logger{
		Handler: h,
		Level:   log.MustParseLevel(c.LogLevel),
	}
}
