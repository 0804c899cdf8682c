package dataset

import (
	"fmt"

	"github.com/arloliu/potency/internal/options"
)

type readConfig struct {
	comma               rune
	ignoreUnknownGroups  bool
}

func newReadConfig() *readConfig {
	return &readConfig{comma: ','}
}

// Option configures Read and ReadJSON.
type Option = options.Option[*readConfig]

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) Option {
	return options.New(func(c *readConfig) error {
		if r == '"' || r == '\r' || r == '\n' || r == 0xFFFD {
			return fmt.Errorf("invalid field delimiter %q", r)
		}
		c.comma = r

		return nil
	})
}

// WithIgnoreUnknownGroups skips rows whose group is neither Reference nor Test instead
// of failing on them.
func WithIgnoreUnknownGroups() Option {
	return options.NoError(func(c *readConfig) {
		c.ignoreUnknownGroups = true
	})
}
