package config

import (
	"fmt"
	"math"

	"github.com/Veraticus/cooccur/internal/common"
	"github.com/spf13/viper"
)

// Default thresholds used when neither flags nor config set them.
const (
	DefaultMinSupport    = 0.05
	DefaultMinConfidence = 0.6
)

// Thresholds are the user-chosen minimum support and confidence.
type Thresholds struct {
	MinSupport    float64
	MinConfidence float64
}

// Validate checks both thresholds lie in (0, 1].
func (t Thresholds) Validate() error {
	if err := checkUnitInterval("min_support", t.MinSupport); err != nil {
		return err
	}
	return checkUnitInterval("min_confidence", t.MinConfidence)
}

// LoadThresholds reads mining.min_support and mining.min_confidence.
func LoadThresholds() (Thresholds, error) {
	t := Thresholds{
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
	}
	if viper.IsSet("mining.min_support") {
		t.MinSupport = viper.GetFloat64("mining.min_support")
	}
	if viper.IsSet("mining.min_confidence") {
		t.MinConfidence = viper.GetFloat64("mining.min_confidence")
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

func checkUnitInterval(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return fmt.Errorf("%w: %s must be >0 and ≤1, got %v", common.ErrInvalidConfig, name, v)
	}
	return nil
}
