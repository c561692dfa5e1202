package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Automation errors. Callers distinguish the failure phase with
// errors.Is: a launch failure means no browser is available, a
// navigation failure means the target rejected us, and a timeout means
// the page never finished loading.
var (
	// ErrLaunch is returned when the Chromium instance cannot be
	// started or connected to.
	ErrLaunch = errors.New("browser: failed to launch browser")

	// ErrNavigation is returned when the target URL cannot be reached.
	ErrNavigation = errors.New("browser: failed to navigate to target")

	// ErrTimeout is returned when navigation or page load exceeds the
	// configured navigation timeout.
	ErrTimeout = errors.New("browser: navigation timed out")
)

// DefaultNavigationTimeout is the page load deadline used when no
// timeout option is given.
const DefaultNavigationTimeout = 30 * time.Second

// Result holds what the automation captured from one page visit.
type Result struct {
	// Title is the document title after load.
	Title string

	// FinalURL is the URL after any redirects.
	FinalURL string

	// HTML is the rendered page HTML.
	HTML string

	// Elapsed is the wall time from launch to capture.
	Elapsed time.Duration
}

// Automator fetches a page and reports what it saw. The pipeline depends
// on this interface so tests can run without a real browser.
type Automator interface {
	// Fetch navigates to targetURL and captures the loaded page.
	Fetch(ctx context.Context, targetURL string) (*Result, error)
}

// RodAutomator drives a local Chromium through the DevTools protocol.
// Each Fetch launches a fresh browser and closes it before returning, so
// a crashed page never poisons later visits.
type RodAutomator struct {
	// headless controls whether Chromium runs without a window.
	headless bool

	// navigationTimeout bounds navigate plus page load.
	navigationTimeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a RodAutomator.
type Option func(*RodAutomator)

// WithHeadless controls headless mode. Default is headless.
func WithHeadless(headless bool) Option {
	return func(a *RodAutomator) {
		a.headless = headless
	}
}

// WithNavigationTimeout sets the page load deadline. Non-positive values
// are ignored.
func WithNavigationTimeout(timeout time.Duration) Option {
	return func(a *RodAutomator) {
		if timeout > 0 {
			a.navigationTimeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the automator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *RodAutomator) {
		a.logger = logger
	}
}

// New creates a new RodAutomator.
func New(opts ...Option) *RodAutomator {
	a := &RodAutomator{
		headless:          true,
		navigationTimeout: DefaultNavigationTimeout,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Fetch launches Chromium, navigates to targetURL, waits for the load
// event, and captures the page. The browser is always closed before
// Fetch returns, including on error.
func (a *RodAutomator) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	start := time.Now()

	a.logger.Info("launching browser", "headless", a.headless, "url", targetURL)

	launch := launcher.New().Headless(a.headless)
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLaunch, err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		launch.Cleanup()
		return nil, fmt.Errorf("%w: %s", ErrLaunch, err)
	}
	defer func() {
		//nolint:errcheck // close failures leave nothing to recover
		b.Close()
		launch.Cleanup()
	}()

	navCtx, cancel := context.WithTimeout(ctx, a.navigationTimeout)
	defer cancel()

	page, err := b.Context(navCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, classify(err, targetURL)
	}

	if err := page.Navigate(targetURL); err != nil {
		return nil, classify(err, targetURL)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, classify(err, targetURL)
	}

	info, err := page.Info()
	if err != nil {
		return nil, classify(err, targetURL)
	}

	pageHTML, err := page.HTML()
	if err != nil {
		return nil, classify(err, targetURL)
	}

	result := &Result{
		Title:    info.Title,
		FinalURL: info.URL,
		HTML:     pageHTML,
		Elapsed:  time.Since(start),
	}

	a.logger.Info("page captured",
		"title", result.Title,
		"final_url", result.FinalURL,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// classify maps a low-level automation error to the package sentinel
// for the failure phase. Deadline errors become ErrTimeout so callers
// can tell a slow page from an unreachable one.
func classify(err error, targetURL string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, targetURL)
	}
	return fmt.Errorf("%w: %s: %s", ErrNavigation, targetURL, err)
}
