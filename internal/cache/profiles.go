// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// ProfileCache serves business profiles from cache, falling through to the
// store on miss. Writes to profiles must go through Invalidate so stale
// brand voice never reaches the generator.
type ProfileCache struct {
	cache   Cacher
	queries *store.Queries
	ttl     time.Duration
}

// NewProfileCache creates a profile cache on top of a backend.
func NewProfileCache(c Cacher, queries *store.Queries, ttl time.Duration) *ProfileCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &ProfileCache{cache: c, queries: queries, ttl: ttl}
}

func profileKey(id int64) string {
	return fmt.Sprintf("profile:%d", id)
}

// Get returns a profile, from cache when possible. Database errors pass
// through untouched, including sql.ErrNoRows.
func (p *ProfileCache) Get(ctx context.Context, id int64) (model.BusinessProfile, error) {
	key := profileKey(id)

	if data, err := p.cache.Get(ctx, key); err == nil {
		var profile model.BusinessProfile
		if err := json.Unmarshal(data, &profile); err == nil {
			return profile, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = p.cache.Delete(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrCacheClosed) {
		// Backend trouble is not fatal for reads; the store still answers.
		_ = err
	}

	profile, err := p.queries.GetProfile(ctx, id)
	if err != nil {
		return model.BusinessProfile{}, err
	}

	if data, err := json.Marshal(profile); err == nil {
		_ = p.cache.Set(ctx, key, data, p.ttl)
	}
	return profile, nil
}

// Invalidate drops a profile from the cache after a write.
func (p *ProfileCache) Invalidate(ctx context.Context, id int64) {
	_ = p.cache.Delete(ctx, profileKey(id))
}
