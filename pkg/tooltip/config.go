package tooltip

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/placement"
)

// Config holds the recognized tooltip options. The set is closed: unknown
// keys in a configuration file are rejected.
type Config struct {
	// BaseClass is always present on the rendered tooltip.
	BaseClass string `toml:"base_class" json:"base_class"`
	// TypeClass marks the tooltip type (e.g. "success"). Empty means none.
	TypeClass string `toml:"type_class" json:"type_class,omitempty"`
	// EffectClass selects a transition effect (e.g. "fade"). Empty means none.
	EffectClass string `toml:"effect_class" json:"effect_class,omitempty"`
	// InClass is present while the tooltip is shown.
	InClass string `toml:"in_class" json:"in_class"`
	// Place is the requested placement in hyphenated form.
	Place string `toml:"place" json:"place"`
	// Spacing is the gap between target and tooltip. When nil the host's
	// default offset is used, else 0.
	Spacing *float64 `toml:"spacing,omitempty" json:"spacing,omitempty"`
	// Interactive lets pointer events reach the tooltip instead of passing
	// through it.
	Interactive bool `toml:"interactive" json:"interactive"`
	// Auto enables auto-flip to keep the tooltip inside the viewport.
	Auto bool `toml:"auto" json:"auto"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		BaseClass: "tooltip",
		InClass:   "in",
		Place:     placement.Default.String(),
	}
}

// Float returns a pointer to v, for setting Config.Spacing.
func Float(v float64) *float64 { return &v }

// Validate checks every option. Placement errors keep their
// INVALID_PLACEMENT code and spacing errors their INVALID_SPACING code.
func (c Config) Validate() error {
	classes := []struct{ option, value string }{
		{"base_class", c.BaseClass},
		{"type_class", c.TypeClass},
		{"effect_class", c.EffectClass},
		{"in_class", c.InClass},
	}
	for _, cl := range classes {
		if err := errors.ValidateClassName(cl.option, cl.value); err != nil {
			return err
		}
	}
	if _, err := placement.Parse(c.Place); err != nil {
		return err
	}
	if c.Spacing != nil {
		if err := errors.ValidateSpacing(*c.Spacing); err != nil {
			return err
		}
	}
	return nil
}

// Placement returns the parsed requested placement.
func (c Config) Placement() (placement.Placement, error) {
	return placement.Parse(c.Place)
}

// DecodeConfig reads a TOML document on top of the defaults and validates
// the result.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown option(s): %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and validates a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to open config %s", path)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
