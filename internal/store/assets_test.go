package store

import (
	"context"
	"testing"

	"assetdesk/internal/db"
	"assetdesk/internal/model"
)

func testAsset(name string) *model.Asset {
	return &model.Asset{
		Name:     name,
		Type:     "Laptop",
		Location: "SSF",
		Status:   model.AssetStatusAvailable,
	}
}

func testUser(email string) *model.User {
	return &model.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Department: "IT",
		Status:     model.UserStatusActive,
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, err := CreateAsset(ctx, database, testAsset("MacBook Pro"))
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.Name != "MacBook Pro" {
		t.Errorf("expected name 'MacBook Pro', got %q", asset.Name)
	}
	if asset.Status != model.AssetStatusAvailable {
		t.Errorf("expected status 'available', got %q", asset.Status)
	}
	if asset.AssignedTo != nil {
		t.Errorf("expected no assignee, got %v", *asset.AssignedTo)
	}
}

func TestCreateAssetWithAssigneeForcesAssignedStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, testUser("owner@example.com"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Caller claims "maintenance" but supplies an assignee; the stored
	// status must be derived, not trusted.
	input := testAsset("Assigned Laptop")
	input.Status = model.AssetStatusMaintenance
	input.AssignedTo = &user.ID

	asset, err := CreateAsset(ctx, database, input)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.Status != model.AssetStatusAssigned {
		t.Errorf("expected status 'assigned', got %q", asset.Status)
	}
	if asset.AssignedTo == nil || *asset.AssignedTo != user.ID {
		t.Errorf("expected assignee %d, got %v", user.ID, asset.AssignedTo)
	}
	if asset.AssignedToName != "Test User" {
		t.Errorf("expected resolved assignee name, got %q", asset.AssignedToName)
	}
}

func TestCreateAssetUnknownAssigneeRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	input := testAsset("Orphan Assignment")
	bogus := int64(9999)
	input.AssignedTo = &bogus

	if _, err := CreateAsset(ctx, database, input); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAssignAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	asset, _ := CreateAsset(ctx, database, testAsset("ThinkPad"))

	if err := AssignAsset(ctx, database, asset.ID, user.ID); err != nil {
		t.Fatalf("AssignAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AssignedTo == nil || *got.AssignedTo != user.ID {
		t.Errorf("expected assignee %d, got %v", user.ID, got.AssignedTo)
	}
	if got.Status != model.AssetStatusAssigned {
		t.Errorf("expected status 'assigned', got %q", got.Status)
	}
}

func TestAssignAssetUnknownUserRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("ThinkPad"))

	err := AssignAsset(ctx, database, asset.ID, 9999)
	if err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AssignedTo != nil {
		t.Errorf("expected asset to stay unassigned, got assignee %v", *got.AssignedTo)
	}
	if got.Status != model.AssetStatusAvailable {
		t.Errorf("expected status 'available', got %q", got.Status)
	}
}

func TestAssignAssetUnknownAssetRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))

	if err := AssignAsset(ctx, database, 9999, user.ID); err != ErrAssetNotFound {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssignOverwritesMaintenanceStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	input := testAsset("Broken Laptop")
	input.Status = model.AssetStatusMaintenance
	asset, _ := CreateAsset(ctx, database, input)

	// Reassigning a non-available asset is permitted; last writer wins.
	if err := AssignAsset(ctx, database, asset.ID, user.ID); err != nil {
		t.Fatalf("AssignAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.Status != model.AssetStatusAssigned {
		t.Errorf("expected status 'assigned', got %q", got.Status)
	}
}

func TestSequentialAssignsLastWriterWins(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateUser(ctx, database, testUser("first@example.com"))
	second, _ := CreateUser(ctx, database, testUser("second@example.com"))
	asset, _ := CreateAsset(ctx, database, testAsset("Shared Laptop"))

	if err := AssignAsset(ctx, database, asset.ID, first.ID); err != nil {
		t.Fatalf("first AssignAsset: %v", err)
	}
	if err := AssignAsset(ctx, database, asset.ID, second.ID); err != nil {
		t.Fatalf("second AssignAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AssignedTo == nil || *got.AssignedTo != second.ID {
		t.Errorf("expected final assignee %d, got %v", second.ID, got.AssignedTo)
	}
	if got.Status != model.AssetStatusAssigned {
		t.Errorf("expected status 'assigned', got %q", got.Status)
	}
}

func TestUnassignAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	asset, _ := CreateAsset(ctx, database, testAsset("ThinkPad"))
	AssignAsset(ctx, database, asset.ID, user.ID)

	if err := UnassignAsset(ctx, database, asset.ID); err != nil {
		t.Fatalf("UnassignAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AssignedTo != nil {
		t.Errorf("expected no assignee, got %v", *got.AssignedTo)
	}
	if got.Status != model.AssetStatusAvailable {
		t.Errorf("expected status 'available', got %q", got.Status)
	}
}

func TestSetAssetAvailableEquivalentToUnassign(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	asset, _ := CreateAsset(ctx, database, testAsset("ThinkPad"))
	AssignAsset(ctx, database, asset.ID, user.ID)

	if err := SetAssetAvailable(ctx, database, asset.ID); err != nil {
		t.Fatalf("SetAssetAvailable: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AssignedTo != nil || got.Status != model.AssetStatusAvailable {
		t.Errorf("expected unassigned available asset, got status %q assignee %v",
			got.Status, got.AssignedTo)
	}
}

func TestStaleAssigneeReported(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Orphan Laptop"))

	// Write a dangling reference directly, the way a manual DB edit or
	// pre-migration data would. Foreign keys have to come off for this.
	conn, err := database.Conn(ctx)
	if err != nil {
		t.Fatalf("acquiring connection: %v", err)
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("disabling foreign keys: %v", err)
	}
	if _, err := conn.ExecContext(ctx,
		`UPDATE assets SET assigned_to = 4242, status = 'assigned' WHERE id = ?`,
		asset.ID); err != nil {
		t.Fatalf("forcing dangling reference: %v", err)
	}
	conn.Close()

	got, err := GetAsset(ctx, database, asset.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if !got.AssignedToStale {
		t.Error("expected stale assignee to be flagged")
	}
	if got.AssignedToName != "" {
		t.Errorf("expected no resolved name, got %q", got.AssignedToName)
	}
}

func TestListAssetsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := testAsset("Dell Monitor")
	a.Type = "Monitor"
	a.Brand = "Dell"
	CreateAsset(ctx, database, a)

	b := testAsset("MacBook Air")
	b.Brand = "Apple"
	b.Location = "LA"
	b.Department = "Design"
	CreateAsset(ctx, database, b)

	all, err := ListAssets(ctx, database, AssetFilter{})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(all))
	}

	monitors, _ := ListAssets(ctx, database, AssetFilter{Type: "Monitor"})
	if len(monitors) != 1 || monitors[0].Name != "Dell Monitor" {
		t.Errorf("expected only the monitor, got %v", monitors)
	}

	// Search is case-insensitive and matches brand.
	apple, _ := ListAssets(ctx, database, AssetFilter{Search: "apple"})
	if len(apple) != 1 || apple[0].Name != "MacBook Air" {
		t.Errorf("expected brand search hit, got %v", apple)
	}

	la, _ := ListAssets(ctx, database, AssetFilter{Location: "LA"})
	if len(la) != 1 {
		t.Errorf("expected 1 LA asset, got %d", len(la))
	}

	design, _ := ListAssets(ctx, database, AssetFilter{Department: "Design"})
	if len(design) != 1 {
		t.Errorf("expected 1 Design asset, got %d", len(design))
	}

	// "all" is the UI's no-filter sentinel.
	everything, _ := ListAssets(ctx, database, AssetFilter{Type: "all", Status: "all"})
	if len(everything) != 2 {
		t.Errorf("expected 2 assets with 'all' filters, got %d", len(everything))
	}
}

func TestUpdateAssetPreservesAssignment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	asset, _ := CreateAsset(ctx, database, testAsset("ThinkPad"))
	AssignAsset(ctx, database, asset.ID, user.ID)

	updated := testAsset("ThinkPad X1")
	updated.Status = model.AssetStatusAssigned
	if err := UpdateAsset(ctx, database, asset.ID, updated); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.Name != "ThinkPad X1" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if got.AssignedTo == nil || *got.AssignedTo != user.ID {
		t.Errorf("expected assignee to survive update, got %v", got.AssignedTo)
	}
}

func TestCustomPropertiesRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	input := testAsset("Tagged Laptop")
	input.CustomProperties = []model.CustomProperty{
		{Key: "RAM", Value: "32GB"},
		{Key: "Warranty", Value: "2027-01-01"},
	}

	asset, err := CreateAsset(ctx, database, input)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if len(asset.CustomProperties) != 2 {
		t.Fatalf("expected 2 custom properties, got %d", len(asset.CustomProperties))
	}
	// Order is part of the contract.
	if asset.CustomProperties[0].Key != "RAM" || asset.CustomProperties[1].Key != "Warranty" {
		t.Errorf("expected ordered properties, got %v", asset.CustomProperties)
	}
}

func TestDeleteAssetRemovesPrograms(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Dev Laptop"))
	_, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "GoLand",
	})
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}

	if err := DeleteAsset(ctx, database, asset.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	programs, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	if len(programs) != 0 {
		t.Errorf("expected program inventory to be removed, got %d entries", len(programs))
	}
}

func TestAssetPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Photo Laptop"))
	photo := []byte("fake image data")
	if err := SetAssetPhoto(ctx, database, asset.ID, photo, "image/jpeg"); err != nil {
		t.Fatalf("SetAssetPhoto: %v", err)
	}

	data, mime, err := GetAssetPhoto(ctx, database, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetPhoto: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected photo data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestGetAssetNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	asset, err := GetAsset(context.Background(), database, 9999)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if asset != nil {
		t.Errorf("expected nil for unknown asset, got %+v", asset)
	}
}
