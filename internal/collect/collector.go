package collect

import (
	"log/slog"
	"strings"

	"github.com/nao1215/reportgen/internal/model"
)

// Collector builds the Dataset consumed by the analyzer.
//
// Design decision: The placeholder table lives here rather than in the
// orchestration layer so every caller (pipeline, tests, future commands)
// gets the same fallback behavior.
type Collector struct {
	// logger for structured logging.
	logger *slog.Logger

	// parser extracts tables from page HTML.
	parser *Parser
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets a custom logger for the collector.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// New creates a new Collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		parser: NewParser(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Collect assembles a dataset from the given page HTML.
// When the page contains a parseable numeric table, that table is
// returned with source model.DatasetSourcePage; otherwise the fixed
// placeholder table is returned with source model.DatasetSourcePlaceholder.
// Collect never fails: the placeholder guarantees a usable dataset.
func (c *Collector) Collect(pageHTML string) (*model.Dataset, string) {
	if strings.TrimSpace(pageHTML) != "" {
		dataset, err := c.parser.ParseTable(strings.NewReader(pageHTML))
		if err == nil && dataset != nil {
			c.logger.Info("dataset extracted from page",
				"columns", len(dataset.Columns),
				"rows", dataset.Rows(),
			)
			return dataset, model.DatasetSourcePage
		}
		c.logger.Debug("no numeric table on page, using placeholder", "reason", err)
	}

	return c.placeholder(), model.DatasetSourcePlaceholder
}

// placeholder returns the fixed four-row demo table.
func (c *Collector) placeholder() *model.Dataset {
	// NewDataset cannot fail here: the fixed columns satisfy every
	// dataset invariant.
	dataset, _ := model.NewDataset( //nolint:errcheck // static input
		[]model.Column{{Name: "Values", Values: []float64{23, 45, 12, 37}}},
		model.TextColumn{Name: "Category", Values: []string{"A", "B", "C", "D"}},
	)
	return dataset
}
