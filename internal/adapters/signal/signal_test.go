package signal

import (
	"testing"
	"time"
)

func TestNewControllerPingPeriod(t *testing.T) {
	if got := NewController(nil, 0, 0).PingPeriod; got != 54*time.Second {
		t.Errorf("default ping period = %v, want 54s", got)
	}
	if got := NewController(nil, 0, 10*time.Second).PingPeriod; got != 10*time.Second {
		t.Errorf("ping period = %v, want 10s", got)
	}
}
