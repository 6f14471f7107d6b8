package cli

import (
	"context"
	"testing"

	"groweasy/internal/config"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "seed"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %q subcommand, got %v (%v)", name, cmd, err)
		}
	}
}

func TestContextHelpers(t *testing.T) {
	cfg := config.Config{App: config.AppConfig{HTTPPort: "5000"}}
	ctx := context.WithValue(context.Background(), configKey, cfg)

	if got := configFrom(ctx); got.App.HTTPPort != "5000" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if loggerFrom(ctx) == nil {
		t.Fatalf("expected a no-op logger fallback")
	}
}

func TestSeedCmd_FlagDefaults(t *testing.T) {
	cmd := newSeedCmd()
	if f := cmd.Flags().Lookup("admin-email"); f == nil || f.DefValue != "admin@groweasy.ai" {
		t.Fatalf("unexpected admin-email flag: %+v", f)
	}
	if f := cmd.Flags().Lookup("migrate"); f == nil || f.DefValue != "true" {
		t.Fatalf("unexpected migrate flag: %+v", f)
	}
}
