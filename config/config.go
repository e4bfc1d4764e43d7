package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/BurntSushi/toml"
)

// SocialFormat selects how the social listing endpoint answers.
type SocialFormat = string

var (
	JSONListing = SocialFormat("json")
	AtomListing = SocialFormat("atom")
)

const baseCfgPath = "freshpage/config.toml"

type Config struct {
	PagePath  string       `toml:"page_path"`  // managed HTML document, read and rewritten in place
	UserAgent string       `toml:"user_agent"` // outbound client identification
	FromURL   string       `toml:"from_url"`   // source-attribution URL sent with every request
	Reddit    RedditConfig `toml:"reddit"`
	News      []NewsConfig `toml:"news"`
}

type RedditConfig struct {
	URL      string       `toml:"url"`
	Format   SocialFormat `toml:"format"`   // "json" or "atom"
	Selector string       `toml:"selector"` // container the rendered posts replace
	Limit    int          `toml:"limit"`
}

// NewsConfig describes one news-search region. Regions are processed in
// config order, after the reddit region.
type NewsConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Selector string `toml:"selector"`
	Limit    int    `toml:"limit"`
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	return Config{
		PagePath:  "public/index.html",
		UserAgent: "freshpage/1.0",
		FromURL:   "https://github.com/scipunch/freshpage",
		Reddit: RedditConfig{
			URL:      "https://www.reddit.com/r/news/hot.json?limit=10",
			Format:   JSONListing,
			Selector: ".reddit-posts",
			Limit:    5,
		},
		News: []NewsConfig{
			{
				Name:     "news",
				URL:      "https://news.google.com/rss/search?q=politics",
				Selector: ".news-items",
				Limit:    5,
			},
			{
				Name:     "impeachment",
				URL:      "https://news.google.com/rss/search?q=impeachment",
				Selector: ".impeachment-items",
				Limit:    2,
			},
		},
	}
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	panic("unclear where to search for the config file")
}
