package mining

import (
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/cooccur/internal/model"
)

var (
	// ErrInvalidInput is the category of every caller error detected before mining starts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyInput is returned when no transactions are supplied.
	ErrEmptyInput = fmt.Errorf("%w: empty transaction collection", ErrInvalidInput)
	// ErrInvalidThreshold is returned when a support or confidence threshold is outside (0, 1].
	ErrInvalidThreshold = fmt.Errorf("%w: threshold must be in (0, 1]", ErrInvalidInput)
	// ErrUnknownAlgorithm is returned by New for an unsupported strategy.
	ErrUnknownAlgorithm = errors.New("unknown mining algorithm")
)

func validateThreshold(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return fmt.Errorf("%w: %s is %v", ErrInvalidThreshold, name, v)
	}
	return nil
}

func validateInput(transactions []model.Transaction, minSupport float64) error {
	if len(transactions) == 0 {
		return ErrEmptyInput
	}
	return validateThreshold("min support", minSupport)
}
