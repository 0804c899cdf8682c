package report

import "github.com/arloliu/potency/internal/options"

type renderConfig struct {
	datasetID string
	source    string
	indent    bool
}

// Option configures Render and Export.
type Option = options.Option[*renderConfig]

// WithDatasetID includes the dataset fingerprint in the report.
func WithDatasetID(id string) Option {
	return options.NoError(func(c *renderConfig) {
		c.datasetID = id
	})
}

// WithSource names the input the report was produced from, usually a file name.
func WithSource(name string) Option {
	return options.NoError(func(c *renderConfig) {
		c.source = name
	})
}

// WithIndent pretty-prints JSON reports.
func WithIndent() Option {
	return options.NoError(func(c *renderConfig) {
		c.indent = true
	})
}
