package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/manaforge/internal/platform/otel"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "no endpoint", endpoint: "", enabled: ""},
		{name: "disabled", endpoint: "http://localhost:4318", enabled: "false"},
		// Non-routable address so no export happens.
		{name: "exporting", endpoint: "http://192.0.2.1:4318", enabled: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MANAFORGE_OTEL_ENDPOINT", tt.endpoint)
			t.Setenv("MANAFORGE_OTEL_ENABLED", tt.enabled)

			shutdown, err := otel.Setup(context.Background(), "rules-test")
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestSetupRejectsBadEnv(t *testing.T) {
	t.Setenv("MANAFORGE_OTEL_ENABLED", "maybe")

	if _, err := otel.Setup(context.Background(), "rules-test"); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestSetupWithConfigNoopShutdownIgnoresCanceledContext(t *testing.T) {
	shutdown, err := otel.SetupWithConfig(context.Background(), "rules-test", otel.Config{Enabled: false})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
	if otel.Tracer("rules-test") == nil {
		t.Fatal("expected a tracer")
	}
}
