package sce

import (
	"github.com/orthogram/sce/graph"
	"github.com/orthogram/sce/rule"
)

// Config carries the tunables a caller needs across all three entry
// points: the grapheme alphabet used by the tokenizer and pattern
// parser, and the default rule flags a parsed rule starts from.
type Config struct {
	separator     rune
	polygraphs    []string
	defaultLTR    bool
	defaultRepeat int
	defaultAge    int
	defaultChance int
}

// Option configures a Config. Use With* helpers to override a default.
type Option func(*Config)

// DefaultConfig returns the engine's zero-configuration defaults: the
// standalone-apostrophe separator, no polygraphs, and the rule flag
// defaults of §4.F (ltr: false, repeat: 1, age: 1, chance: 100).
func DefaultConfig() Config {
	return Config{
		separator:     graph.DefaultSeparator,
		defaultRepeat: 1,
		defaultAge:    1,
		defaultChance: 100,
	}
}

// NewConfig builds a Config from DefaultConfig, applying opts in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSeparator overrides the grapheme-disambiguation separator rune.
func WithSeparator(r rune) Option {
	return func(c *Config) { c.separator = r }
}

// WithPolygraphs declares the multi-character graphemes the tokenizer
// should recognize as a single token.
func WithPolygraphs(polygraphs ...string) Option {
	return func(c *Config) { c.polygraphs = append([]string{}, polygraphs...) }
}

// WithDefaultLTR changes the flag a rule starts from when its source
// omits an explicit ltr toggle.
func WithDefaultLTR(ltr bool) Option {
	return func(c *Config) { c.defaultLTR = ltr }
}

// WithDefaultRepeat changes the flag a rule starts from when its
// source omits an explicit repeat:N clause.
func WithDefaultRepeat(n int) Option {
	return func(c *Config) { c.defaultRepeat = n }
}

// WithDefaultAge changes the flag a rule starts from when its source
// omits an explicit age:N clause.
func WithDefaultAge(n int) Option {
	return func(c *Config) { c.defaultAge = n }
}

// WithDefaultChance changes the flag a rule starts from when its
// source omits an explicit chance:P clause.
func WithDefaultChance(p int) Option {
	return func(c *Config) { c.defaultChance = p }
}

// Alphabet projects the parts of Config the tokenizer and pattern
// parser need.
func (c Config) Alphabet() graph.Alphabet {
	return graph.Alphabet{Separator: c.separator, Polygraphs: c.polygraphs}
}

// Flags projects the parts of Config a rule starts from when its
// source text omits an explicit flag clause.
func (c Config) Flags() rule.Flags {
	return rule.NewFlags(c.defaultLTR, c.defaultRepeat, c.defaultAge, c.defaultChance)
}
