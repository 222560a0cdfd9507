package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "equexit",
		Value:   -4,
		Message: "must be non-negative",
	}

	expected := "equexit: must be non-negative (got: -4)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "color", Value: "pink", Message: "is invalid"},
		}
		expected := "color: is invalid (got: pink)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "interval", Value: "", Message: "interval is empty"},
			{Field: "equexit", Value: -2, Message: "must be non-negative"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "interval") || !strings.Contains(result, "equexit") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "empty interval",
			modify:    func(c *Config) { c.Interval = " " },
			wantField: "interval",
		},
		{
			name:      "non-numeric interval",
			modify:    func(c *Config) { c.Interval = "fast" },
			wantField: "interval",
		},
		{
			name:      "unknown differences mode",
			modify:    func(c *Config) { c.Differences = "sometimes" },
			wantField: "differences",
		},
		{
			name:      "unknown color mode",
			modify:    func(c *Config) { c.Color = "rainbow" },
			wantField: "color",
		},
		{
			name:      "negative equexit",
			modify:    func(c *Config) { c.EquExit = -2 },
			wantField: "equexit",
		},
		{
			name:      "empty shell in shell mode",
			modify:    func(c *Config) { c.Shell = "" },
			wantField: "shell",
		},
		{
			name:      "negative columns",
			modify:    func(c *Config) { c.Terminal.Columns = -1 },
			wantField: "terminal.columns",
		},
		{
			name:      "negative rows",
			modify:    func(c *Config) { c.Terminal.Rows = -1 },
			wantField: "terminal.rows",
		},
		{
			name:      "unknown log level",
			modify:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
		{
			name:      "zero log size",
			modify:    func(c *Config) { c.Logging.MaxSizeMB = 0 },
			wantField: "logging.max_size_mb",
		},
		{
			name:      "huge log size",
			modify:    func(c *Config) { c.Logging.MaxSizeMB = 5000 },
			wantField: "logging.max_size_mb",
		},
		{
			name:      "negative backups",
			modify:    func(c *Config) { c.Logging.MaxBackups = -1 },
			wantField: "logging.max_backups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_AcceptedValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"differences changes", func(c *Config) { c.Differences = "changes" }},
		{"differences permanent alias", func(c *Config) { c.Differences = "1" }},
		{"differences none", func(c *Config) { c.Differences = "none" }},
		{"color never", func(c *Config) { c.Color = "never" }},
		{"zero equexit threshold", func(c *Config) { c.EquExit = 0 }},
		{"exec mode without shell", func(c *Config) { c.Exec = true; c.Shell = "" }},
		{"comma interval", func(c *Config) { c.Interval = "0,25" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if errs := cfg.Validate(); len(errs) != 0 {
				t.Errorf("Validate() = %v, want no errors", errs)
			}
		})
	}
}
