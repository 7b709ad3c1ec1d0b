package db

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a MongoDB session transaction so that all
// writes it performs commit or roll back as one unit.
//
// Standalone mongod deployments do not support transactions. In that case fn
// is re-run directly; callers preserve all-or-nothing semantics there by
// validating the entire batch before writing anything.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		log.Printf("WARN: failed to start MongoDB session, running without transaction: %v", err)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && isTransactionUnsupported(err) {
		log.Printf("WARN: MongoDB transactions unsupported on this deployment, running without transaction")
		return fn(ctx)
	}
	return err
}

// isTransactionUnsupported reports whether the error indicates the deployment
// cannot run multi-document transactions (standalone mongod).
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported") ||
		strings.Contains(msg, "IllegalOperation")
}
