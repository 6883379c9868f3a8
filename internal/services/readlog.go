package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/storage"
)

// ReadLog tracks which articles the account has opened for analysis. The set
// only grows; every insertion writes through to storage immediately. Read
// state is namespaced per account so two accounts on one machine do not share
// it.
type ReadLog struct {
	kv  storage.KV
	key string
	log logging.Logger

	ids map[string]struct{}
}

// NewReadLog constructs the read log for one account's email.
func NewReadLog(kv storage.KV, email string, log logging.Logger) *ReadLog {
	return &ReadLog{
		kv:  kv,
		key: storage.ReadItemsKey(email),
		log: log,
		ids: make(map[string]struct{}),
	}
}

// Load reads the persisted set. A parse failure is logged and yields an empty
// set; it never propagates to the caller.
func (r *ReadLog) Load(ctx context.Context) map[string]struct{} {
	r.ids = make(map[string]struct{})

	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.log.Warn(ctx, "failed to load read items", "err", err)
		return r.snapshot()
	}
	if len(data) == 0 {
		return r.snapshot()
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		r.log.Warn(ctx, "read items are malformed, starting empty", "err", err)
		return r.snapshot()
	}
	for _, id := range ids {
		r.ids[id] = struct{}{}
	}
	return r.snapshot()
}

// MarkRead adds id to the set and persists it. Redundant calls are no-ops.
// Returns the updated set.
func (r *ReadLog) MarkRead(ctx context.Context, id string) (map[string]struct{}, error) {
	if _, ok := r.ids[id]; ok {
		return r.snapshot(), nil
	}

	r.ids[id] = struct{}{}

	ids := make([]string, 0, len(r.ids))
	for v := range r.ids {
		ids = append(ids, v)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal read items: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, data); err != nil {
		return nil, fmt.Errorf("persist read items: %w", err)
	}

	return r.snapshot(), nil
}

// Size returns the number of distinct articles read.
func (r *ReadLog) Size() int {
	return len(r.ids)
}

// IsRead reports whether id is in the set.
func (r *ReadLog) IsRead(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *ReadLog) snapshot() map[string]struct{} {
	out := make(map[string]struct{}, len(r.ids))
	for id := range r.ids {
		out[id] = struct{}{}
	}
	return out
}
