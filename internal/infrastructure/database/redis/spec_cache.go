package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

const (
	ruleSetKeyPrefix = "spec:rules:"
	legacyKeyPrefix  = "spec:legacy:"

	defaultRuleTTL = 5 * time.Minute
)

// SpecCache decorates a spec.Repository with read-through Redis caching.
//
// Cache failures degrade to the underlying repository: a broken cache slows
// evaluation down but never blocks it.  Only positive lookups are cached, so
// a model that gains a rule-set link becomes visible on the next resolve.
type SpecCache struct {
	source spec.Repository
	client *Client
	ttl    time.Duration
	logger logging.Logger
}

// NewSpecCache wraps source with Redis caching.  A zero ttl uses the default.
func NewSpecCache(source spec.Repository, client *Client, ttl time.Duration, logger logging.Logger) *SpecCache {
	if ttl <= 0 {
		ttl = defaultRuleTTL
	}
	return &SpecCache{source: source, client: client, ttl: ttl, logger: logger}
}

// RuleSetForModel returns the cached rule-set when present, falling back to
// the source repository and populating the cache on a hit there.
func (c *SpecCache) RuleSetForModel(ctx context.Context, modelID common.ModelID) (*spec.RuleSet, error) {
	key := ruleSetKeyPrefix + string(modelID)

	raw, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		var rs spec.RuleSet
		if err := json.Unmarshal([]byte(raw), &rs); err == nil {
			return &rs, nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = c.client.Del(ctx, key)
	case !IsMiss(err):
		c.logger.Warn("rule-set cache read failed",
			logging.Err(err), logging.String("model_id", string(modelID)))
	}

	rs, err := c.source.RuleSetForModel(ctx, modelID)
	if err != nil || rs == nil {
		return rs, err
	}

	if payload, err := json.Marshal(rs); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
			c.logger.Warn("rule-set cache write failed",
				logging.Err(err), logging.String("model_id", string(modelID)))
		}
	}
	return rs, nil
}

// LegacyEntriesForModel returns the cached legacy entries when present,
// falling back to the source repository.
func (c *SpecCache) LegacyEntriesForModel(ctx context.Context, modelID common.ModelID) ([]spec.Entry, error) {
	key := legacyKeyPrefix + string(modelID)

	raw, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		var entries []spec.Entry
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return entries, nil
		}
		_ = c.client.Del(ctx, key)
	case !IsMiss(err):
		c.logger.Warn("legacy rule cache read failed",
			logging.Err(err), logging.String("model_id", string(modelID)))
	}

	entries, err := c.source.LegacyEntriesForModel(ctx, modelID)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
			c.logger.Warn("legacy rule cache write failed",
				logging.Err(err), logging.String("model_id", string(modelID)))
		}
	}
	return entries, nil
}

// InvalidateModel drops the cached rules for a model, for use after rule-set
// or legacy rule updates.
func (c *SpecCache) InvalidateModel(ctx context.Context, modelID common.ModelID) error {
	return c.client.Del(ctx,
		ruleSetKeyPrefix+string(modelID),
		legacyKeyPrefix+string(modelID),
	)
}
