package store

import (
	"context"
	"testing"

	"assetdesk/internal/db"
)

func TestCreateAndGetAdmin(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	admin, err := CreateAdmin(ctx, database, "Admin One", "admin@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.Name != "Admin One" || admin.Email != "admin@example.com" {
		t.Errorf("unexpected admin: %+v", admin)
	}

	byEmail, err := GetAdminByEmail(ctx, database, "admin@example.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != admin.ID {
		t.Errorf("expected admin %d, got %+v", admin.ID, byEmail)
	}
	if byEmail.PasswordHash != "hash" {
		t.Errorf("expected password hash to load, got %q", byEmail.PasswordHash)
	}

	missing, err := GetAdminByEmail(ctx, database, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestCreateAdminDuplicateEmailRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateAdmin(ctx, database, "First", "admin@example.com", "hash"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if _, err := CreateAdmin(ctx, database, "Second", "admin@example.com", "hash"); err != ErrDuplicateAdminEmail {
		t.Errorf("expected ErrDuplicateAdminEmail, got %v", err)
	}
}

func TestCountAdmins(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	n, err := CountAdmins(ctx, database)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 admins, got %d", n)
	}

	CreateAdmin(ctx, database, "Admin", "admin@example.com", "hash")

	n, _ = CountAdmins(ctx, database)
	if n != 1 {
		t.Errorf("expected 1 admin, got %d", n)
	}
}
