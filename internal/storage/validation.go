package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cooccur/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun checks a run is complete enough to archive.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.Dataset) == "" {
		return fmt.Errorf("%w: dataset is required", ErrInvalidRun)
	}
	if run.Algorithm == "" {
		return fmt.Errorf("%w: algorithm is required", ErrInvalidRun)
	}
	if run.TransactionCount <= 0 {
		return fmt.Errorf("%w: transaction count must be positive", ErrInvalidRun)
	}
	for i, fi := range run.Itemsets {
		if fi.IsEmpty() {
			return fmt.Errorf("%w: itemset %d is empty", ErrInvalidRun, i)
		}
	}
	for i, r := range run.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: rule %d: %v", ErrInvalidRun, i, err)
		}
	}
	return nil
}
