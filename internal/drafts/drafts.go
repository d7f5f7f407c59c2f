// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package drafts keeps template drafts in Valkey between editor requests.
// Drafts are stored as JSON and expire after a period without edits; this
// is working state for the editor, not durable storage.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"msgstudio/internal/models"
)

const (
	// DefaultTTL is how long an untouched draft lives in Valkey.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces draft keys in Valkey.
	keyPrefix = "draft:"

	// scanBatch is the COUNT hint used when listing drafts.
	scanBatch = 100
)

// Store manages draft lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a draft store backed by the given Valkey client. A zero
// ttl uses DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Key returns the Valkey key for a draft ID.
func Key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Get loads a draft. Returns nil if it does not exist or has expired.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	payload, err := s.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draft get: %w", err)
	}

	var t models.Template
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, fmt.Errorf("draft unmarshal: %w", err)
	}
	return &t, nil
}

// Put stores a draft and resets its TTL.
func (s *Store) Put(ctx context.Context, t *models.Template) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("draft marshal: %w", err)
	}
	if err := s.client.Set(ctx, Key(t.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft put: %w", err)
	}
	return nil
}

// Delete removes a draft and its revisions. Deleting a missing draft is
// not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, Key(id), RevisionsKey(id)).Err(); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

// List returns the IDs of all stored drafts, in no particular order.
// Keys under the draft prefix that are not valid IDs are skipped.
func (s *Store) List(ctx context.Context) ([]uuid.UUID, error) {
	var (
		ids    []uuid.UUID
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("draft scan: %w", err)
		}
		for _, k := range keys {
			id, err := uuid.Parse(strings.TrimPrefix(k, keyPrefix))
			if err != nil {
				slog.Warn("skipping malformed draft key", "key", k)
				continue
			}
			ids = append(ids, id)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids, nil
}
