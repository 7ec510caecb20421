// Package connector keeps the live registry of connectors serving external
// resources. The registry is process state, not persisted; the store keeps it
// in step with committed deletions.
package connector

import (
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/hashicorp/go-memdb"
	"go.uber.org/zap"
)

const (
	tableEntries   = "entries"
	indexID        = "id"
	indexConnector = "connector"
)

// Entry is a registered resource and the connector serving it
type Entry struct {
	ResourceKey  string
	ConnectorKey string
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableEntries: {
				Name: tableEntries,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ResourceKey"},
					},
					indexConnector: {
						Name:    indexConnector,
						Indexer: &memdb.StringFieldIndex{Field: "ConnectorKey"},
					},
				},
			},
		},
	}
}

// Registry is the live connector registry. It is safe for concurrent use.
type Registry struct {
	db *memdb.MemDB
}

func NewRegistry() (*Registry, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("creating connector registry: %w", err)
	}
	return &Registry{db: db}, nil
}

// Register adds or replaces the entry of a resource
func (r *Registry) Register(resource *model.ExternalResource) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	entry := &Entry{ResourceKey: resource.ID, ConnectorKey: resource.ConnectorID}
	if err := txn.Insert(tableEntries, entry); err != nil {
		return fmt.Errorf("registering resource %q: %w", resource.ID, err)
	}
	txn.Commit()

	logger.Log.Debug("registered resource", zap.String("resource", resource.ID), zap.String("connector", resource.ConnectorID))
	return nil
}

// Unregister removes every resource served by the connector and returns how
// many were removed. Unregistering an unknown connector is not an error.
func (r *Registry) Unregister(connectorKey string) (int, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(tableEntries, indexConnector, connectorKey)
	if err != nil {
		return 0, fmt.Errorf("unregistering connector %q: %w", connectorKey, err)
	}
	txn.Commit()

	if n == 0 {
		logger.Log.Warn("connector not found in live registry", zap.String("connector", connectorKey))
	}
	return n, nil
}

// UnregisterResource removes one resource and reports whether it was
// registered
func (r *Registry) UnregisterResource(resourceKey string) (bool, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableEntries, indexID, resourceKey)
	if err != nil {
		return false, fmt.Errorf("looking up resource %q: %w", resourceKey, err)
	}
	if raw == nil {
		logger.Log.Warn("resource not found in live registry", zap.String("resource", resourceKey))
		return false, nil
	}
	if err := txn.Delete(tableEntries, raw); err != nil {
		return false, fmt.Errorf("unregistering resource %q: %w", resourceKey, err)
	}
	txn.Commit()
	return true, nil
}

// Lookup returns the entry of a registered resource
func (r *Registry) Lookup(resourceKey string) (Entry, bool) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableEntries, indexID, resourceKey)
	if err != nil || raw == nil {
		return Entry{}, false
	}
	return *raw.(*Entry), true
}

// Resources returns the keys of the resources served by a connector
func (r *Registry) Resources(connectorKey string) []string {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEntries, indexConnector, connectorKey)
	if err != nil {
		return nil
	}
	var keys []string
	for raw := it.Next(); raw != nil; raw = it.Next() {
		keys = append(keys, raw.(*Entry).ResourceKey)
	}
	return keys
}

// Len returns the number of registered resources
func (r *Registry) Len() int {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEntries, indexID)
	if err != nil {
		return 0
	}
	n := 0
	for raw := it.Next(); raw != nil; raw = it.Next() {
		n++
	}
	return n
}
