package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 7 * time.Second})
	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default", Medium())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()

	t.Setenv("RECORDHUB_TIMEOUT_LONG", "45s")
	t.Setenv("RECORDHUB_TIMEOUT_PING", "nope")
	t.Setenv("RECORDHUB_TIMEOUT_SHORT", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() = %d, want 1", n)
	}
	cur := Current()
	if cur.Long != 45*time.Second {
		t.Errorf("Long = %v, want 45s", cur.Long)
	}
	if cur.Ping != DefaultPing || cur.Short != DefaultShort {
		t.Errorf("invalid values should be ignored, got %+v", cur)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
