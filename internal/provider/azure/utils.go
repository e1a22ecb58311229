// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/juju/retry"

	"github.com/juju/webappslots/internal/provider/azure/internal/errorutils"
)

const (
	retryDelay       = 5 * time.Second
	maxRetryDelay    = 1 * time.Minute
	maxRetryDuration = 5 * time.Minute
)

// call calls f, with exponential backoff as long as ARM rejects the
// request with http.StatusTooManyRequests. The SDK pipeline already
// retries throttled requests a few times; this covers longer periods
// of throttling.
func (env *AppService) call(ctx context.Context, what string, f func() error) error {
	err := retry.Call(retry.CallArgs{
		Func: f,
		IsFatalError: func(err error) bool {
			return !errorutils.IsTooManyRequestsError(err)
		},
		NotifyFunc: func(err error, attempt int) {
			logger.Debugf("%s: attempt %d: %v", what, attempt, err)
		},
		Attempts:    -1,
		Delay:       retryDelay,
		MaxDelay:    maxRetryDelay,
		MaxDuration: maxRetryDuration,
		BackoffFunc: retry.DoubleDelay,
		Clock:       env.clock,
		Stop:        ctx.Done(),
	})
	if retry.IsDurationExceeded(err) || retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
		err = retry.LastError(err)
	}
	return errors.Annotate(err, what)
}

func toValue[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}
