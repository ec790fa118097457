package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		if err := SetLogLevel(tt.in); err != nil {
			t.Fatalf("SetLogLevel(%q): %v", tt.in, err)
		}
		if got := Log.GetLevel(); got != tt.want {
			t.Errorf("SetLogLevel(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}

	if err := SetLogLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
