package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWithoutInit(t *testing.T) {
	globalLogger = nil

	// Must not panic before Init is called
	Info("startup", "key", "value")
	Warn("careful")
	Debug("details")
	Error("failed", "error", "boom")

	if GetLogger() == nil {
		t.Fatal("Expected fallback logger")
	}
}

func TestWithRequestFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer func() { globalLogger = nil }()

	WithRequest("req-1", "0xabc", "/api/v1/airlines").Infow("handled")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Errorf("Expected request_id req-1, got %v", fields["request_id"])
	}
	if fields["caller"] != "0xabc" {
		t.Errorf("Expected caller 0xabc, got %v", fields["caller"])
	}
}

func TestInitProduction(t *testing.T) {
	defer func() { globalLogger = nil }()

	if err := Init("production"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("Expected logger after Init")
	}
}
