package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "verse-test",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitLoggerWithWriter(config, &buf)

	Info("connected to node", "url", "http://localhost:8545", "attempt", 1)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["service"] != "verse-test" {
		t.Errorf("Expected service=verse-test, got %v", logEntry["service"])
	}

	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}

	if logEntry["msg"] != "connected to node" {
		t.Errorf("Expected msg='connected to node', got %v", logEntry["msg"])
	}

	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", logEntry["level"])
	}

	if logEntry["attempt"] != float64(1) {
		t.Errorf("Expected attempt=1, got %v", logEntry["attempt"])
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("Expected request_id=req-123, got %s", got)
	}

	if log := FromContext(ctx); log == nil {
		t.Error("Expected non-nil logger")
	}

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("Expected empty request id on bare context, got %s", got)
	}
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == "" || a == b {
		t.Errorf("Expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestConfigPresets(t *testing.T) {
	prod := ProductionConfig()
	if !prod.IsJSON() || prod.Environment != EnvironmentProduction || prod.AddSource {
		t.Errorf("Unexpected production config: %+v", prod)
	}

	dev := DevelopmentConfig()
	if dev.Format != LogFormatText || dev.Level != LogLevelDebug || !dev.AddSource {
		t.Errorf("Unexpected development config: %+v", dev)
	}

	def := DefaultConfig()
	if def.ServiceName == "" || def.Level == "" || def.Format == "" {
		t.Errorf("Default config has empty fields: %+v", def)
	}
}
