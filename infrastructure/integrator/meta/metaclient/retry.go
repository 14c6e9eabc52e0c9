package metaclient

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Sleeper espera d ou até o contexto ser cancelado. Injetável nos testes.
type Sleeper func(ctx context.Context, d time.Duration) error

// RetryPolicy define quantas vezes e com que espera uma chamada limitada
// pela plataforma é repetida. A espera cresce linearmente: Backoff * tentativa.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Sleep       Sleeper
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: time.Second, Sleep: sleepContext}
}

// Do executa fn e repete apenas quando o erro é ErrRateLimited
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return err
		}

		if attempt == attempts {
			break
		}

		wait := p.Backoff * time.Duration(attempt)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"wait":    wait.String(),
		}).Warn("metaclient: rate limited, retrying")

		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return sleepErr
		}
	}

	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
