// Package config resolves runtime settings from compiled-in defaults, an
// optional .env file, LUCKYDRAW_* environment variables and flags, in that
// order of precedence (flags win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LUCKYDRAW_"

// DefaultCategories is the category set used when none is configured. The
// last entry is the no-draw category.
var DefaultCategories = []string{
	"郭勝雄(Max Kuo)",
	"金國忠(Kc King)",
	"黃進源(Simon Huang)",
	"劉毓廷(Vincent Liu)",
	"陳仁哲(Gary Chen)",
	"劉懿徵(Lancelot Liu)",
	"鄭凱文(Kevin Cheng)",
	"不抽獎",
}

// DefaultSkip is the no-draw category of DefaultCategories.
const DefaultSkip = "不抽獎"

// Config holds every setting the program reads at start-up.
type Config struct {
	SourceDir   string
	WinnersRoot string
	Categories  []string
	Skip        string
	Cooldown    time.Duration

	Port       int
	DBPath     string
	OperatorPW string
	LogLevel   string
	NoKeyboard bool
	NoBrowser  bool
	NoAnimate  bool
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		SourceDir:   "photos",
		WinnersRoot: "winners",
		Categories:  append([]string(nil), DefaultCategories...),
		Skip:        DefaultSkip,
		Cooldown:    time.Second,
		Port:        8082,
		DBPath:      "luckydraw.db",
		LogLevel:    "info",
	}
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays LUCKYDRAW_* variables from lookup onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(envPrefix + key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = b
		return nil
	}

	str("SOURCE", &c.SourceDir)
	str("WINNERS", &c.WinnersRoot)
	// Present but empty clears the skip category.
	if v, ok := lookup(envPrefix + "SKIP"); ok {
		c.Skip = v
	}
	str("DB", &c.DBPath)
	str("OPERATOR_PW", &c.OperatorPW)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup(envPrefix + "CATEGORIES"); ok && v != "" {
		c.Categories = SplitCategories(v)
	}
	if v, ok := lookup(envPrefix + "COOLDOWN"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCOOLDOWN: %w", envPrefix, err)
		}
		c.Cooldown = d
	}
	if v, ok := lookup(envPrefix + "PORT"); ok && v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Port = p
	}
	if err := boolean("NO_KEYBOARD", &c.NoKeyboard); err != nil {
		return err
	}
	if err := boolean("NO_BROWSER", &c.NoBrowser); err != nil {
		return err
	}
	return boolean("NO_ANIMATE", &c.NoAnimate)
}

// categoriesFlag lets -categories replace the whole list.
type categoriesFlag struct{ dst *[]string }

func (f categoriesFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return strings.Join(*f.dst, ",")
}

func (f categoriesFlag) Set(v string) error {
	*f.dst = SplitCategories(v)
	return nil
}

// RegisterFlags binds c's fields to fs, using c's current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.SourceDir, "source", c.SourceDir, "Directory holding candidate images")
	fs.StringVar(&c.WinnersRoot, "winners", c.WinnersRoot, "Root directory of the winners archive")
	fs.Var(categoriesFlag{&c.Categories}, "categories", "Comma-separated category labels")
	fs.StringVar(&c.Skip, "skip", c.Skip, "Category that performs no draw (empty for none)")
	fs.DurationVar(&c.Cooldown, "cooldown", c.Cooldown, "Delay before the draw trigger re-arms")
	fs.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite draw history path")
	fs.StringVar(&c.OperatorPW, "operatorpw", c.OperatorPW, "Operator password (auto-generated if not set)")
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&c.NoKeyboard, "nokeyboard", c.NoKeyboard, "Disable keyboard shortcuts")
	fs.BoolVar(&c.NoBrowser, "nobrowser", c.NoBrowser, "Do not open the operator page on start")
	fs.BoolVar(&c.NoAnimate, "noanimate", c.NoAnimate, "Skip the start-up banner")
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.SourceDir == "":
		return errors.New("source directory is required")
	case c.WinnersRoot == "":
		return errors.New("winners directory is required")
	case len(c.Categories) == 0:
		return errors.New("at least one category is required")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Port)
	case c.Cooldown < 0:
		return fmt.Errorf("cooldown must not be negative, got %s", c.Cooldown)
	}
	for _, cat := range c.Categories {
		if strings.ContainsAny(cat, `/\`) || cat == "." || cat == ".." {
			return fmt.Errorf("category %q cannot be used as a directory name", cat)
		}
	}
	if c.Skip != "" {
		for _, cat := range c.Categories {
			if cat == c.Skip {
				return nil
			}
		}
		return fmt.Errorf("skip category %q is not in the category list", c.Skip)
	}
	return nil
}

// dropDefaultSkip clears the built-in skip category when the category list
// was replaced with one that does not contain it.
func (c *Config) dropDefaultSkip() {
	if c.Skip == DefaultSkip && !slices.Contains(c.Categories, DefaultSkip) {
		c.Skip = ""
	}
}

// SplitCategories splits a comma-separated list, trimming blanks.
func SplitCategories(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load resolves the configuration. Flags are registered on fs, which the
// caller may already have populated with its own flags, and parsed from args.
func Load(envFile string, fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	if err := LoadEnvFile(envFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.dropDefaultSkip()
	return cfg, cfg.Validate()
}
