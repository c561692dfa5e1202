package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		a := New()
		if !a.headless {
			t.Error("headless = false, want true by default")
		}
		if a.navigationTimeout != DefaultNavigationTimeout {
			t.Errorf("navigationTimeout = %v, want %v", a.navigationTimeout, DefaultNavigationTimeout)
		}
		if a.logger == nil {
			t.Error("logger is nil, want default logger")
		}
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()

		a := New(WithHeadless(false), WithNavigationTimeout(5*time.Second))
		if a.headless {
			t.Error("headless = true, want false")
		}
		if a.navigationTimeout != 5*time.Second {
			t.Errorf("navigationTimeout = %v, want 5s", a.navigationTimeout)
		}
	})

	t.Run("non-positive timeout ignored", func(t *testing.T) {
		t.Parallel()

		a := New(WithNavigationTimeout(0), WithNavigationTimeout(-time.Second))
		if a.navigationTimeout != DefaultNavigationTimeout {
			t.Errorf("navigationTimeout = %v, want %v", a.navigationTimeout, DefaultNavigationTimeout)
		}
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("deadline becomes timeout", func(t *testing.T) {
		t.Parallel()

		err := classify(context.DeadlineExceeded, "https://example.com")
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("classify() = %v, want ErrTimeout", err)
		}
	})

	t.Run("wrapped deadline becomes timeout", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("wait load: %w", context.DeadlineExceeded)
		err := classify(wrapped, "https://example.com")
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("classify() = %v, want ErrTimeout", err)
		}
	})

	t.Run("other errors become navigation", func(t *testing.T) {
		t.Parallel()

		err := classify(errors.New("connection refused"), "https://example.com")
		if !errors.Is(err, ErrNavigation) {
			t.Errorf("classify() = %v, want ErrNavigation", err)
		}
		if errors.Is(err, ErrTimeout) {
			t.Error("classify() matches ErrTimeout, want navigation only")
		}
	})
}

func TestAutomatorInterface(t *testing.T) {
	t.Parallel()

	var _ Automator = (*RodAutomator)(nil)
}
