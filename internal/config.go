package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// firstDayLayout is the date format of the feed.first_day setting.
const firstDayLayout = "2006-01-02"

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Feed    FeedConfig        `yaml:"feed"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Agenda  AgendaConfig      `yaml:"agenda"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Feed.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Agenda.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// FeedConfig locates the programme feed. Exactly one of Path (local ICS file)
// or URL (remote ICS feed) must be set; a local file is additionally watched
// for changes.
type FeedConfig struct {
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	FirstDay string `yaml:"first_day"`
}

// Validate validates the feed configuration.
func (c *FeedConfig) Validate() error {
	if (c.Path == "") == (c.URL == "") {
		return fmt.Errorf("feed: exactly one of path or url must be set")
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.FirstDay, validation.Required, validation.Date(firstDayLayout)),
	); err != nil {
		return err
	}
	day, _ := time.Parse(firstDayLayout, c.FirstDay)
	if day.Weekday() != time.Monday {
		return fmt.Errorf("feed: first_day %q is not a Monday", c.FirstDay)
	}
	return nil
}

// FirstDayDate returns the parsed first conference day. Validate must have
// succeeded first.
func (c *FeedConfig) FirstDayDate() time.Time {
	day, _ := time.Parse(firstDayLayout, c.FirstDay)
	return day
}

// CatalogConfig holds the SQLite programme catalog location.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AgendaConfig holds the bookmark store location.
type AgendaConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the agenda configuration.
func (c *AgendaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Feed: FeedConfig{
			Path:     "./programme.ics",
			FirstDay: "2026-09-14",
		},
		Catalog: CatalogConfig{
			Path: "./confsched.db",
		},
		Agenda: AgendaConfig{
			Path: "./agenda.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
