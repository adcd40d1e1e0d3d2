package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Fetching categories...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Fetching categories...")
	assert.True(t, strings.HasSuffix(out, "\r"), "the line is cleared on stop")
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Connecting...")
	s.SetMessage("Seeding reveal steps...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	assert.Contains(t, buf.String(), "Seeding reveal steps...")
	assert.NotContains(t, buf.String(), "Connecting...")
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Waiting...")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after the context was cancelled")
	}
}

func TestSpinnerStop(t *testing.T) {
	tests := []struct {
		name  string
		start bool
	}{
		{"before start", false},
		{"after start", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := newSpinner(context.Background(), &buf, "Idle")
			if tt.start {
				s.Start()
			}
			s.Stop()
			s.Stop()
			if !tt.start {
				assert.Empty(t, buf.String())
			}
		})
	}
}
