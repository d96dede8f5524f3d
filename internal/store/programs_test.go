package store

import (
	"context"
	"testing"

	"assetdesk/internal/db"
	"assetdesk/internal/model"
)

func TestAddProgramDuplicateNameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Dev Laptop"))

	if _, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Slack",
	}); err != nil {
		t.Fatalf("AddProgram: %v", err)
	}

	// Same name modulo case and surrounding whitespace.
	_, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "  SLACK ",
	})
	if err != ErrDuplicateProgram {
		t.Errorf("expected ErrDuplicateProgram, got %v", err)
	}

	programs, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	if len(programs) != 1 {
		t.Errorf("expected 1 program, got %d", len(programs))
	}
}

func TestAddProgramSameNameDifferentAssets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateAsset(ctx, database, testAsset("Laptop A"))
	b, _ := CreateAsset(ctx, database, testAsset("Laptop B"))

	for _, asset := range []*model.Asset{a, b} {
		if _, err := AddProgram(ctx, database, &model.Program{
			OwnerKind: model.ProgramOwnerAsset,
			AssetID:   asset.ID,
			Name:      "Slack",
		}); err != nil {
			t.Fatalf("AddProgram for asset %d: %v", asset.ID, err)
		}
	}
}

func TestProgramsScopedByOwnerKind(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Laptop"))
	server, _ := CreateServer(ctx, database, testServer("db-01", "10.0.0.5"))

	// Asset and server ids come from separate sequences and can collide;
	// the inventories must still stay apart.
	if _, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Docker",
	}); err != nil {
		t.Fatalf("AddProgram for asset: %v", err)
	}
	if _, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerServer,
		AssetID:   server.ID,
		Name:      "Docker",
	}); err != nil {
		t.Fatalf("AddProgram for server: %v", err)
	}

	assetPrograms, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	serverPrograms, _ := ListPrograms(ctx, database, model.ProgramOwnerServer, server.ID)
	if len(assetPrograms) != 1 || len(serverPrograms) != 1 {
		t.Errorf("expected 1 program each, got %d asset / %d server",
			len(assetPrograms), len(serverPrograms))
	}
}

func TestAddProgramDerivesLogo(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Laptop"))

	withVendor, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Photoshop",
		Vendor:    "Adobe Systems",
	})
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	if withVendor.LogoURL != "https://logo.clearbit.com/adobesystems.com" {
		t.Errorf("unexpected vendor logo URL: %q", withVendor.LogoURL)
	}

	noVendor, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Visual Studio Code",
	})
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	if noVendor.LogoURL != "https://api.iconify.design/logos/visual-studio-code.svg" {
		t.Errorf("unexpected fallback logo URL: %q", noVendor.LogoURL)
	}

	explicit, err := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Internal Tool",
		LogoURL:   "https://intranet.example.com/logo.png",
	})
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	if explicit.LogoURL != "https://intranet.example.com/logo.png" {
		t.Errorf("explicit logo URL was overwritten: %q", explicit.LogoURL)
	}
}

func TestRemoveProgram(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Laptop"))
	program, _ := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Slack",
	})

	if err := RemoveProgram(ctx, database, model.ProgramOwnerAsset, asset.ID, program.ID); err != nil {
		t.Fatalf("RemoveProgram: %v", err)
	}

	programs, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	if len(programs) != 0 {
		t.Errorf("expected empty inventory, got %d programs", len(programs))
	}

	// Removing with a mismatched owner must not touch anything.
	other, _ := AddProgram(ctx, database, &model.Program{
		OwnerKind: model.ProgramOwnerAsset,
		AssetID:   asset.ID,
		Name:      "Zoom",
	})
	if err := RemoveProgram(ctx, database, model.ProgramOwnerServer, asset.ID, other.ID); err != nil {
		t.Fatalf("RemoveProgram: %v", err)
	}
	remaining, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	if len(remaining) != 1 {
		t.Error("program removed despite mismatched owner")
	}
}

func TestListProgramsSortedByName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, testAsset("Laptop"))
	for _, name := range []string{"Zoom", "Slack", "Docker"} {
		if _, err := AddProgram(ctx, database, &model.Program{
			OwnerKind: model.ProgramOwnerAsset,
			AssetID:   asset.ID,
			Name:      name,
		}); err != nil {
			t.Fatalf("AddProgram %q: %v", name, err)
		}
	}

	programs, _ := ListPrograms(ctx, database, model.ProgramOwnerAsset, asset.ID)
	want := []string{"Docker", "Slack", "Zoom"}
	for i, name := range want {
		if programs[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, programs[i].Name)
		}
	}
}
