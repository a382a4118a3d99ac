package app

import (
	"testing"

	"github.com/spf13/viper"
)

func TestConfig_UpdateFromFlags(t *testing.T) {
	c := &Config{Format: "yaml", LogLevel: "warn"}
	c.UpdateFromFlags(true, false, true, "", "", "")

	if !c.Verbose || c.Quiet || !c.NoColor {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Format != "yaml" {
		t.Errorf("Format = %q, empty flag must keep the configured value", c.Format)
	}
	if c.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", c.LogLevel)
	}

	c.UpdateFromFlags(false, false, false, "json", "debug", "")
	if c.Format != "json" || c.LogLevel != "debug" {
		t.Errorf("flag values must win: %+v", c)
	}
}

func TestLogSetting(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetEnvPrefix("TABMATCH")
	viper.AutomaticEnv()

	t.Setenv("TABMATCH_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "")
	if got := logSetting("log_format", "auto"); got != "auto" {
		t.Errorf("got %q, want default", got)
	}

	t.Setenv("LOG_FORMAT", "json")
	if got := logSetting("log_format", "auto"); got != "json" {
		t.Errorf("got %q, want LOG_FORMAT", got)
	}

	t.Setenv("TABMATCH_LOG_FORMAT", "console")
	if got := logSetting("log_format", "auto"); got != "console" {
		t.Errorf("got %q, want TABMATCH_LOG_FORMAT", got)
	}
}
