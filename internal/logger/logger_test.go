package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultReturnsUsableLogger(t *testing.T) {
	l := Default("test")
	if l == nil {
		t.Fatal("Default returned nil")
	}
	l.Info("hello")
}

func TestNewWithConfigAppliesExplicitLevel(t *testing.T) {
	l := NewWithConfig("test", log.ErrorLevel, true, true, log.TextFormatter)
	if l == nil {
		t.Fatal("NewWithConfig returned nil")
	}
	l.Error("boom")
}
