package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "warpdeck.log")

	logger, closer, err := Open(path, logrus.InfoLevel)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	logger.WithField("warp", "shop").Info("refreshed")
	logger.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "refreshed") || !strings.Contains(got, "warp=shop") {
		t.Fatalf("log output = %q, want message with warp field", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug line written at info level: %q", got)
	}
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", logrus.InfoLevel)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
