// Package ledger records derived identifiers in a JSON index under the
// configured root directory, so they can be listed and looked up later.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/nsuuid/config"
	"github.com/projecteru2/nsuuid/lock/flock"
	"github.com/projecteru2/nsuuid/storage"
	storejson "github.com/projecteru2/nsuuid/storage/json"
	"github.com/projecteru2/nsuuid/types"
)

// Ledger is safe for concurrent use, including across processes.
type Ledger struct {
	store storage.Store[Index]
}

// New opens the ledger under conf.RootDir, creating the directory if needed.
func New(conf *config.Config) (*Ledger, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := os.MkdirAll(conf.RootDir, 0o750); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", conf.RootDir, err)
	}
	locker := flock.New(conf.LedgerLock())
	return &Ledger{store: storejson.New[Index](conf.LedgerFile(), locker)}, nil
}

// Add records ids. An id that is already recorded keeps its first record.
// Returns the number of new records.
func (l *Ledger) Add(ctx context.Context, ids ...*types.Identifier) (added int, err error) {
	logger := log.WithFunc("ledger.Add")
	err = l.store.Update(ctx, func(idx *Index) error {
		for _, id := range ids {
			if id == nil {
				continue
			}
			if _, ok := idx.Records[id.ID]; ok {
				logger.Infof(ctx, "%s already recorded, skipping", id.ID)
				continue
			}
			rec := *id
			idx.Records[id.ID] = &rec
			added++
		}
		return nil
	})
	return added, err
}

// Inspect returns the record matching ref.
func (l *Ledger) Inspect(ctx context.Context, ref string) (*types.Identifier, error) {
	var result *types.Identifier
	return result, l.store.With(ctx, func(idx *Index) error {
		id, err := ResolveRef(idx, ref)
		if err != nil {
			return err
		}
		rec := *idx.Records[id]
		result = &rec
		return nil
	})
}

// List returns all records, oldest first.
func (l *Ledger) List(ctx context.Context) ([]*types.Identifier, error) {
	var result []*types.Identifier
	err := l.store.With(ctx, func(idx *Index) error {
		for _, rec := range idx.Records {
			if rec == nil {
				continue
			}
			r := *rec
			result = append(result, &r)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, err
}

// Delete removes the records matching refs and returns the removed ids.
// Unknown refs are logged and skipped; an ambiguous ref aborts the delete.
func (l *Ledger) Delete(ctx context.Context, refs []string) ([]string, error) {
	logger := log.WithFunc("ledger.Delete")
	var deleted []string
	err := l.store.Update(ctx, func(idx *Index) error {
		deleted = deleted[:0]
		for _, ref := range refs {
			id, err := ResolveRef(idx, ref)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					logger.Infof(ctx, "%q not found, skipping", ref)
					continue
				}
				return err
			}
			delete(idx.Records, id)
			deleted = append(deleted, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
