package config

import "time"

// RemindersConfig controls the appointment reminder runner.
type RemindersConfig struct {
	// Enabled turns the runner on. Off by default so API-only deployments
	// do not need a notifier.
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// Interval is how often the runner scans for upcoming appointments.
	Interval time.Duration `env:"INTERVAL" envDefault:"5m"`

	// Lookahead is how far ahead of now an appointment qualifies for a reminder.
	Lookahead time.Duration `env:"LOOKAHEAD" envDefault:"24h"`

	// Concurrency bounds parallel reminder deliveries per sweep.
	Concurrency int `env:"CONCURRENCY" envDefault:"4"`
}

// Sanitize applies guardrails to reminder configuration values.
func (r *RemindersConfig) Sanitize() {
	if r.Interval <= 0 {
		r.Interval = 5 * time.Minute
	}
	if r.Lookahead <= 0 {
		r.Lookahead = 24 * time.Hour
	}
	if r.Concurrency <= 0 {
		r.Concurrency = 4
	}
}
