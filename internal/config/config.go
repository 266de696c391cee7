package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every externally supplied setting. The two Supabase
// values are the required backend endpoints; everything else has a
// workable default.
type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string

	// DatabaseURL switches the repositories to a pooled direct
	// Postgres connection instead of the REST data API.
	DatabaseURL string

	ListenAddr string
	BasePath   string

	MailHost      string
	MailPort      int
	MailUser      string
	MailPass      string
	MailRecipient string
}

func Load() Config {
	cfg := Config{
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		BasePath:        getenv("BASE_PATH", "/sunny"),
		MailHost:        os.Getenv("MAIL_HOST"),
		MailPort:        587,
		MailUser:        os.Getenv("MAIL_USER"),
		MailPass:        os.Getenv("MAIL_PASS"),
		MailRecipient:   os.Getenv("MAIL_RECIPIENT"),
	}
	if p := os.Getenv("MAIL_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.MailPort = port
		}
	}
	return cfg
}

// BackendConfigured reports whether the remote backend is reachable in
// principle. A missing value or a recognized placeholder counts as not
// configured; the route guard and the login page both check this.
func (c Config) BackendConfigured() bool {
	if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
		return false
	}
	if strings.Contains(c.SupabaseURL, "placeholder") {
		return false
	}
	if strings.Contains(c.SupabaseAnonKey, "placeholder") {
		return false
	}
	return true
}

// MailConfigured reports whether the expiry digest can be sent.
func (c Config) MailConfigured() bool {
	return c.MailHost != "" && c.MailRecipient != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
