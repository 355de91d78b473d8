// Package conf holds the bootstrap configuration structs scanned from the
// config file by the kratos config loader.
package conf

import (
	"encoding/json"
	"time"
)

// Duration is a time.Duration that unmarshals from either a Go duration
// string ("5s", "2m") or a plain number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler. The kratos config reader
// normalizes file sources through JSON before scanning.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// AsDuration returns the value as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Bootstrap is the root configuration.
type Bootstrap struct {
	Server    *Server    `json:"server"`
	Data      *Data      `json:"data"`
	Shortener *Shortener `json:"shortener"`
}

// Server configures the transport layer.
type Server struct {
	Http *HTTP `json:"http"`
}

// HTTP configures the HTTP server.
type HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data configures the backing stores.
type Data struct {
	Redis *Redis `json:"redis"`
}

// Redis configures the Redis connection.
type Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	DB           int      `json:"db"`
	DialTimeout  Duration `json:"dial_timeout"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Shortener configures link allocation and the public surface.
type Shortener struct {
	// BaseURL is prepended to short codes when building absolute short URLs.
	BaseURL string `json:"base_url"`
	// LinkTTL is the uniform expiry applied to the forward, reverse, and
	// counter entries of a link. Unset defaults to one year; a negative
	// value disables expiry.
	LinkTTL Duration `json:"link_ttl"`
	// MaxGenerateAttempts bounds the random-code allocation retry loop.
	MaxGenerateAttempts int `json:"max_generate_attempts"`
	// RequestsPerMinute is the per-IP rate limit on the HTTP surface.
	RequestsPerMinute int `json:"requests_per_minute"`
}

const (
	DefaultLinkTTL             = 365 * 24 * time.Hour
	DefaultMaxGenerateAttempts = 10
	DefaultRequestsPerMinute   = 120
)

// Normalize fills in defaults for unset shortener settings.
func (s *Shortener) Normalize() {
	if s.BaseURL == "" {
		s.BaseURL = "http://localhost:8000"
	}
	if s.LinkTTL == 0 {
		s.LinkTTL = Duration(DefaultLinkTTL)
	}
	if s.MaxGenerateAttempts <= 0 {
		s.MaxGenerateAttempts = DefaultMaxGenerateAttempts
	}
	if s.RequestsPerMinute <= 0 {
		s.RequestsPerMinute = DefaultRequestsPerMinute
	}
}
