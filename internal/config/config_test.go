package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.SourcePath != "empreendimentos.csv" {
		t.Errorf("SourcePath = %q", cfg.SourcePath)
	}
	if cfg.DisableMagnitudeFix {
		t.Error("DisableMagnitudeFix must default to false")
	}
	if cfg.ExportBackend != "sqlite" || cfg.SQLiteDSN != "painel.db" || cfg.ExportTable != "listings" {
		t.Errorf("export defaults wrong: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PANEL_ADDR", ":9090")
	t.Setenv("PANEL_SOURCE_URL", "https://example.com/export.csv")
	t.Setenv("PANEL_DISABLE_MAGNITUDE_FIX", "true")
	t.Setenv("PANEL_EXPORT_BACKEND", "postgres")
	t.Setenv("PANEL_POSTGRES_DSN", "postgres://localhost/painel")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.SourceURL != "https://example.com/export.csv" {
		t.Errorf("SourceURL = %q", cfg.SourceURL)
	}
	if !cfg.DisableMagnitudeFix {
		t.Error("DisableMagnitudeFix override not applied")
	}
	if cfg.ExportBackend != "postgres" || cfg.PostgresDSN != "postgres://localhost/painel" {
		t.Errorf("export overrides wrong: %+v", cfg)
	}
}

func TestGetEnvBool_Invalid(t *testing.T) {
	t.Setenv("PANEL_DISABLE_MAGNITUDE_FIX", "not-a-bool")

	if getEnvBool("PANEL_DISABLE_MAGNITUDE_FIX", false) {
		t.Error("invalid bool must fall back to default")
	}
}
