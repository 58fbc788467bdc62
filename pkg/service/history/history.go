package history

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
)

const (
	Key          = "analysis_history"
	DefaultLimit = 10
)

// Store keeps a bounded, newest first log of analyses under a single key.
// Append is a read-modify-write without conditional writes, so concurrent
// appends are last writer wins.
type Store struct {
	kv    interfaces.KVStore
	limit int
}

func New(kv interfaces.KVStore, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{kv: kv, limit: limit}
}

func (x *Store) Limit() int {
	return x.limit
}

// Append prepends entry and keeps at most limit entries.
func (x *Store) Append(ctx context.Context, entry analysis.HistoryEntry) error {
	current, err := x.load(ctx)
	if err != nil {
		return err
	}

	entries := make([]analysis.HistoryEntry, 0, min(len(current)+1, x.limit))
	entries = append(entries, entry)
	entries = append(entries, current...)
	if len(entries) > x.limit {
		entries = entries[:x.limit]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal history")
	}

	if err := x.kv.Put(ctx, Key, raw, 0); err != nil {
		return goerr.Wrap(err, "failed to put history", goerr.T(errs.TagDatabase))
	}
	return nil
}

// List returns the log, newest first. Absent or undecodable data and store
// read failures give an empty log.
func (x *Store) List(ctx context.Context) ([]analysis.HistoryEntry, error) {
	entries, err := x.load(ctx)
	if err != nil {
		logging.From(ctx).Warn("history unavailable, returning empty log", "error", err)
		return []analysis.HistoryEntry{}, nil
	}
	return entries, nil
}

func (x *Store) load(ctx context.Context) ([]analysis.HistoryEntry, error) {
	raw, err := x.kv.Get(ctx, Key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get history", goerr.T(errs.TagDatabase))
	}
	if raw == nil {
		return []analysis.HistoryEntry{}, nil
	}

	var entries []analysis.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logging.From(ctx).Warn("discarding undecodable history", "error", err, "size", len(raw))
		return []analysis.HistoryEntry{}, nil
	}
	if entries == nil {
		entries = []analysis.HistoryEntry{}
	}
	if len(entries) > x.limit {
		entries = entries[:x.limit]
	}
	return entries, nil
}
