package store

import (
	"context"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// NoOp is a gateway that performs no persistence. It is used when no database
// is configured: every lookup is a cache miss and every write succeeds.
type NoOp struct{}

// Get always reports a cache miss.
func (NoOp) Get(_ context.Context, _ string) (*leadprep.CompanyRecord, error) {
	return nil, nil
}

// Put discards the leader set.
func (NoOp) Put(_ context.Context, _ string, _ []leadprep.Leader) error {
	return nil
}

// Close does nothing.
func (NoOp) Close() {}
