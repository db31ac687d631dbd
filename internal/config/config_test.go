package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func setRequired(t *testing.T) {
	t.Setenv("OWNER_ADDRESS", "0x00000000000000000000000000000000000000aa")
	t.Setenv("SEED_AIRLINE", "0x00000000000000000000000000000000000000a0")
	t.Setenv("APP_ADDRESS", "0x00000000000000000000000000000000000000ff")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default HTTP addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Expected sqlite driver, got %s", cfg.Database.Driver)
	}
	want := decimal.RequireFromString("10000000000000000000")
	if !cfg.Governance.MinFunding.Equal(want) {
		t.Errorf("Expected min funding %s, got %s", want, cfg.Governance.MinFunding)
	}
	if !cfg.Governance.AuthorizeApp {
		t.Error("Expected AUTHORIZE_APP to default to true")
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("Expected redis addr localhost:6379, got %s", cfg.Redis.Addr())
	}
}

func TestLoad_MissingOwner(t *testing.T) {
	t.Setenv("SEED_AIRLINE", "0x00000000000000000000000000000000000000a0")
	t.Setenv("APP_ADDRESS", "0x00000000000000000000000000000000000000ff")
	t.Setenv("OWNER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when OWNER_ADDRESS is empty")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestLoad_RejectsFractionalMinFunding(t *testing.T) {
	setRequired(t)
	t.Setenv("MIN_FUNDING", "10.5")

	if _, err := Load(); err == nil {
		t.Error("Expected error for fractional MIN_FUNDING")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "db", Port: "5432", User: "u", Password: "p", Name: "consortium"}
	if got := d.DSN(); got != "postgres://u:p@db:5432/consortium?sslmode=disable" {
		t.Errorf("Unexpected DSN %s", got)
	}
}
