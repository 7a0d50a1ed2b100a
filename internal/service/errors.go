package service

import (
	"errors"

	"github.com/and161185/dogial/internal/errs"
	"go.uber.org/zap"
)

var known = []error{
	errs.ErrNotFound,
	errs.ErrAlreadyExists,
	errs.ErrUnauthorized,
	errs.ErrRateLimited,
	errs.ErrInvalidInput,
	errs.ErrInternal,
}

// mask passes domain sentinels through and replaces anything else with
// errs.ErrInternal after logging it.
func mask(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	log.Error(op+" failed", zap.Error(err))
	return errs.ErrInternal
}
