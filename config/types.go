package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Radarr  RadarrConfig  `mapstructure:"radarr"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// TMDBConfig holds TMDB API connection details and account credentials
type TMDBConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	WebURL      string        `mapstructure:"web_url"`
	ImageURL    string        `mapstructure:"image_url"`
	RedirectURL string        `mapstructure:"redirect_url"`
	PosterSize  string        `mapstructure:"poster_size"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	SessionID   string        `mapstructure:"session_id"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RadarrConfig holds Radarr API connection details and add settings
type RadarrConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	URL              string `mapstructure:"url"`
	APIKey           string `mapstructure:"api_key"`
	QualityProfileID int64  `mapstructure:"quality_profile_id"`
	RootFolder       string `mapstructure:"root_folder"`
	Monitored        bool   `mapstructure:"monitored"`
	SearchOnAdd      bool   `mapstructure:"search_on_add"`
	Tags             []int  `mapstructure:"tags"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default"`
	Presets           map[string]string `mapstructure:"presets"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun      bool `mapstructure:"dry_run"`
	Confirm     bool `mapstructure:"confirm"`
	ShowDetails bool `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
