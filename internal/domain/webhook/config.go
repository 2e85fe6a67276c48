// Package webhook holds the per-type outgoing webhook configuration.
package webhook

import (
	"errors"
	"fmt"

	"mtadmin/internal/domain/record"
	"mtadmin/internal/utils/validate"
)

var ErrInvalidURL = errors.New("invalid webhook url")

// Config maps every record type to the URL its messages are posted to.
// An empty URL means the type is not configured.
type Config struct {
	Warning    string `json:"warning"`
	Technical  string `json:"technical"`
	CreateWarn string `json:"create_warn"`
	CreateBan  string `json:"create_ban"`
}

// Default returns a configuration with every URL empty.
func Default() Config {
	return Config{}
}

// URLFor returns the URL configured for t, or "" for unknown types.
func (c Config) URLFor(t record.RecType) string {
	switch t {
	case record.RecTypeWarning:
		return c.Warning
	case record.RecTypeTechnical:
		return c.Technical
	case record.RecTypeCreateWarn:
		return c.CreateWarn
	case record.RecTypeCreateBan:
		return c.CreateBan
	default:
		return ""
	}
}

// Set returns a copy of c with the URL of t replaced.
func (c Config) Set(t record.RecType, url string) (Config, error) {
	switch t {
	case record.RecTypeWarning:
		c.Warning = url
	case record.RecTypeTechnical:
		c.Technical = url
	case record.RecTypeCreateWarn:
		c.CreateWarn = url
	case record.RecTypeCreateBan:
		c.CreateBan = url
	default:
		return c, fmt.Errorf("%w: %q", record.ErrInvalidType, t)
	}
	return c, nil
}

// Configured reports whether t has a non-empty URL.
func (c Config) Configured(t record.RecType) bool {
	return c.URLFor(t) != ""
}

// Validate checks that every non-empty URL is well formed.
func (c Config) Validate() error {
	for _, t := range record.Types {
		u := c.URLFor(t)
		if u != "" && !validate.IsURL(u) {
			return fmt.Errorf("%w for %s: %q", ErrInvalidURL, t, u)
		}
	}
	return nil
}
