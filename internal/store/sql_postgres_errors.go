package store

import (
	"github.com/jackc/pgerrcode"
)

// ErrorClassificator tells withRetry whether a failed statement may succeed
// when executed again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// retryablePgCodes are connection losses, rollbacks caused by concurrent
// transactions and a server that is still starting up. Constraint violations
// such as a duplicate srn are never retried; they surface as
// ErrResourceAlreadyExists.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	if code == "" {
		return NonRetryable
	}
	if _, ok := retryablePgCodes[code]; ok {
		return Retryable
	}
	return NonRetryable
}
