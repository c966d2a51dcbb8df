package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/common"
)

// classify marks store failures caused by an expired or cancelled request
// context with common.ErrTimeout. Everything else passes through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		if errors.Is(err, common.ErrTimeout) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrTimeout, err)
	}
	return err
}
