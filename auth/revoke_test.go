// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }

	if revoked, _ := m.IsRevoked(ctx, "t1"); revoked {
		t.Error("unknown token reported as revoked")
	}

	m.Revoke(ctx, "t1", now.Add(time.Hour))
	if revoked, _ := m.IsRevoked(ctx, "t1"); !revoked {
		t.Error("revoked token not reported as revoked")
	}

	// Already-expired tokens are not stored
	m.Revoke(ctx, "t2", now.Add(-time.Minute))
	if _, ok := m.revoked["t2"]; ok {
		t.Error("expired token was stored")
	}

	// Past expiry the entry no longer matters and is pruned on the next revoke
	now = now.Add(2 * time.Hour)
	if revoked, _ := m.IsRevoked(ctx, "t1"); revoked {
		t.Error("token still revoked past its expiry")
	}
	m.Revoke(ctx, "t3", now.Add(time.Hour))
	if _, ok := m.revoked["t1"]; ok {
		t.Error("expired entry was not pruned")
	}
}
