// Package store persists flow configuration documents
//
// A Store implements the external persistence contract: whole-document
// CRUD plus a summary list. Backends exist for a remote HTTP store, a
// local sqlite database, and redis
package store

import (
	"context"
	"errors"

	"github.com/crewflow/console/pkg/api"
)

// Store handles storage of flow configuration documents. A failed
// operation never partially applies; callers keep their in-memory state
type Store interface {
	Create(
		context.Context, *api.FlowConfiguration,
	) (*api.FlowConfiguration, error)
	Get(context.Context, api.FlowID) (*api.FlowConfiguration, error)
	Update(
		context.Context, api.FlowID, *api.FlowConfiguration,
	) (*api.FlowConfiguration, error)
	Delete(context.Context, api.FlowID) error
	List(context.Context) ([]*api.FlowSummary, error)
	Close() error
}

var (
	// ErrFlowNotFound is returned when a flow document is not found
	ErrFlowNotFound = errors.New("flow not found")

	// ErrFlowExists is returned when creating a flow whose ID is taken
	ErrFlowExists = errors.New("flow already exists")
)
