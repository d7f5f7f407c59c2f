// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"msgstudio/internal/models"
)

const (
	// MaxRevisions is how many saved snapshots are kept per draft.
	MaxRevisions = 20

	// revisionPrefix namespaces revision lists. It differs from keyPrefix so
	// that listing drafts never sees revision keys.
	revisionPrefix = "revisions:"
)

// RevisionsKey returns the Valkey key of a draft's revision list.
func RevisionsKey(id uuid.UUID) string {
	return revisionPrefix + id.String()
}

// AddRevision records a saved snapshot of a draft. Only the newest
// MaxRevisions are kept, and the list expires with the draft.
func (s *Store) AddRevision(ctx context.Context, rev models.Revision) error {
	if rev.Template == nil {
		return fmt.Errorf("add revision: nil template")
	}
	payload, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("revision marshal: %w", err)
	}

	key := RevisionsKey(rev.Template.ID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, MaxRevisions-1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add revision: %w", err)
	}
	return nil
}

// Revisions returns the saved snapshots of a draft, newest first.
// Entries that cannot be decoded are skipped.
func (s *Store) Revisions(ctx context.Context, id uuid.UUID) ([]models.Revision, error) {
	items, err := s.client.LRange(ctx, RevisionsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	revs := make([]models.Revision, 0, len(items))
	for _, item := range items {
		var rev models.Revision
		if err := json.Unmarshal([]byte(item), &rev); err != nil {
			slog.Warn("skipping malformed revision", "id", id, "error", err)
			continue
		}
		revs = append(revs, rev)
	}
	return revs, nil
}
