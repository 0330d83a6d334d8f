package cmd

import "time"

// Config carries all runtime settings of the application.
// Values come from the environment; see cmd/app for loading.
type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	DefaultCurrency string
	DraftOrderTTL   time.Duration
}
