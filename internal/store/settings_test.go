package store

import (
	"context"
	"testing"
	"time"

	"assetdesk/internal/db"
)

func TestGetJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first != second {
		t.Error("expected the persisted secret to be returned on later calls")
	}
}

func TestTokenRevocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "unknown-jti")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("unknown token reported as revoked")
	}

	expires := time.Now().Add(time.Hour)
	if err := RevokeToken(ctx, database, "jti-1", expires); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	// Revoking twice is a no-op.
	if err := RevokeToken(ctx, database, "jti-1", expires); err != nil {
		t.Fatalf("RevokeToken again: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}
}

func TestPruneRevokedTokens(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := RevokeToken(ctx, database, "expired", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "live", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	if err := PruneRevokedTokens(ctx, database); err != nil {
		t.Fatalf("PruneRevokedTokens: %v", err)
	}

	revoked, _ := IsTokenRevoked(ctx, database, "expired")
	if revoked {
		t.Error("expected expired entry to be pruned")
	}
	revoked, _ = IsTokenRevoked(ctx, database, "live")
	if !revoked {
		t.Error("expected live entry to survive pruning")
	}
}
