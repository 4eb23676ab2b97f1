package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output           string   `yaml:"output"`
	Workers          int      `yaml:"workers"`
	ViewportWidth    int      `yaml:"viewport_width"`
	GrowthMultiplier int      `yaml:"growth_multiplier"`
	ShopHost         string   `yaml:"shop_host"`
	Behaviors        []string `yaml:"behaviors"`
	Debug            bool     `yaml:"debug"`
	KeepTmp          bool     `yaml:"keep_tmp"`

	UserAgent  string `yaml:"user_agent"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	Bypass     bool   `yaml:"bypass"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	Workers          int
	ViewportWidth    int
	GrowthMultiplier int
	ShopHost         string
	Behaviors        []string
	KeepTmp          bool
	UserAgent        string
	Cookie           string
	CookieFile       string
	Bypass           bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:           ".",
		Workers:          4,
		ViewportWidth:    1280,
		GrowthMultiplier: 11,
		ShopHost:         "",
		Behaviors:        []string{"scroller", "accordion", "hero", "sticky-header", "external-links"},
		Debug:            false,
		KeepTmp:          false,
		UserAgent:        "",
		Cookie:           "",
		CookieFile:       "",
		Bypass:           false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveProfilePath()
	if err == ErrNoProfile || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `freshwater-cdn config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.ViewportWidth != 0 {
		c.ViewportWidth = o.ViewportWidth
	}
	if o.GrowthMultiplier != 0 {
		c.GrowthMultiplier = o.GrowthMultiplier
	}
	if o.ShopHost != "" {
		c.ShopHost = o.ShopHost
	}
	if len(o.Behaviors) > 0 {
		c.Behaviors = o.Behaviors
	}
	if o.KeepTmp {
		c.KeepTmp = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.Bypass {
		c.Bypass = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = 1280
	}
	if c.GrowthMultiplier == 0 {
		c.GrowthMultiplier = 11
	}
	if len(c.Behaviors) == 0 {
		c.Behaviors = DefaultConfig().Behaviors
	}
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -workers: %d\n", c.Workers)
	fmt.Printf(" -viewport_width: %d\n", c.ViewportWidth)
	fmt.Printf(" -growth_multiplier: %d\n", c.GrowthMultiplier)
	if c.ShopHost != "" {
		fmt.Printf(" -shop_host: %s\n", c.ShopHost)
	}
	if len(c.Behaviors) > 0 {
		fmt.Printf(" -behaviors: %s\n", strings.Join(c.Behaviors, ", "))
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.KeepTmp {
		fmt.Printf(" -keep_tmp: %t\n", c.KeepTmp)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.Bypass {
		fmt.Printf(" -bypass: %t\n", c.Bypass)
	}
}

// BehaviorEnabled reports whether the named behavior is listed in the
// active config. Matching is case-insensitive.
func (c *Config) BehaviorEnabled(name string) bool {
	for _, b := range c.Behaviors {
		if strings.EqualFold(strings.TrimSpace(b), name) {
			return true
		}
	}
	return false
}
