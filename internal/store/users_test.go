package store

import (
	"context"
	"testing"

	"assetdesk/internal/db"
	"assetdesk/internal/model"
)

func TestCreateUserDuplicateEmailRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, testUser("dup@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second := testUser("dup@example.com")
	second.FirstName = "Other"
	if _, err := CreateUser(ctx, database, second); err != ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateUserDuplicateEmailExcludesSelf(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice, _ := CreateUser(ctx, database, testUser("alice@example.com"))
	CreateUser(ctx, database, testUser("bob@example.com"))

	// Keeping your own email is not a conflict.
	update := testUser("alice@example.com")
	update.Department = "Finance"
	if err := UpdateUser(ctx, database, alice.ID, update); err != nil {
		t.Fatalf("UpdateUser with own email: %v", err)
	}

	// Taking someone else's is.
	update.Email = "bob@example.com"
	if err := UpdateUser(ctx, database, alice.ID, update); err != ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDeleteUserReleasesAssets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("leaving@example.com"))
	laptop, _ := CreateAsset(ctx, database, testAsset("Laptop One"))
	monitor, _ := CreateAsset(ctx, database, testAsset("Monitor One"))
	AssignAsset(ctx, database, laptop.ID, user.ID)
	AssignAsset(ctx, database, monitor.ID, user.ID)

	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	gone, _ := GetUser(ctx, database, user.ID)
	if gone != nil {
		t.Error("expected user to be deleted")
	}

	for _, id := range []int64{laptop.ID, monitor.ID} {
		got, _ := GetAsset(ctx, database, id)
		if got.AssignedTo != nil {
			t.Errorf("asset %d: expected no assignee, got %v", id, *got.AssignedTo)
		}
		if got.Status != model.AssetStatusAvailable {
			t.Errorf("asset %d: expected status 'available', got %q", id, got.Status)
		}
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	if err := DeleteUser(context.Background(), database, 9999); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserIncludesAssignedAssets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, testUser("loaded@example.com"))
	laptop, _ := CreateAsset(ctx, database, testAsset("Work Laptop"))
	AssignAsset(ctx, database, laptop.ID, user.ID)

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if len(got.AssignedAssets) != 1 {
		t.Fatalf("expected 1 assigned asset, got %d", len(got.AssignedAssets))
	}
	if got.AssignedAssets[0].ID != laptop.ID || got.AssignedAssets[0].Name != "Work Laptop" {
		t.Errorf("unexpected asset ref: %+v", got.AssignedAssets[0])
	}
}

func TestListUsersFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ada := testUser("ada@example.com")
	ada.FirstName = "Ada"
	ada.LastName = "Lovelace"
	ada.Department = "Engineering"
	ada.Location = "SSF"
	CreateUser(ctx, database, ada)

	alan := testUser("alan@example.com")
	alan.FirstName = "Alan"
	alan.LastName = "Turing"
	alan.Department = "Research"
	alan.Location = "LA"
	alan.Status = model.UserStatusInactive
	CreateUser(ctx, database, alan)

	all, err := ListUsers(ctx, database, UserFilter{})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}

	byName, _ := ListUsers(ctx, database, UserFilter{Search: "lovelace"})
	if len(byName) != 1 || byName[0].Email != "ada@example.com" {
		t.Errorf("expected last-name search hit, got %v", byName)
	}

	byEmail, _ := ListUsers(ctx, database, UserFilter{Search: "alan@"})
	if len(byEmail) != 1 || byEmail[0].FirstName != "Alan" {
		t.Errorf("expected email search hit, got %v", byEmail)
	}

	inactive, _ := ListUsers(ctx, database, UserFilter{Status: model.UserStatusInactive})
	if len(inactive) != 1 || inactive[0].FirstName != "Alan" {
		t.Errorf("expected 1 inactive user, got %v", inactive)
	}

	research, _ := ListUsers(ctx, database, UserFilter{Department: "Research"})
	if len(research) != 1 {
		t.Errorf("expected 1 Research user, got %d", len(research))
	}

	inLA, _ := ListUsers(ctx, database, UserFilter{Location: "LA"})
	if len(inLA) != 1 || inLA[0].FirstName != "Alan" {
		t.Errorf("expected 1 LA user, got %v", inLA)
	}

	// "all" is the UI sentinel for no location filter.
	anywhere, _ := ListUsers(ctx, database, UserFilter{Location: "all"})
	if len(anywhere) != 2 {
		t.Errorf("expected 2 users with location 'all', got %d", len(anywhere))
	}
}

func TestUpsertUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first := testUser("upsert@example.com")
	first.FirstName = "Before"
	if err := UpsertUserByEmail(ctx, database, first); err != nil {
		t.Fatalf("UpsertUserByEmail insert: %v", err)
	}

	second := testUser("upsert@example.com")
	second.FirstName = "After"
	second.Department = "Sales"
	if err := UpsertUserByEmail(ctx, database, second); err != nil {
		t.Fatalf("UpsertUserByEmail update: %v", err)
	}

	users, _ := ListUsers(ctx, database, UserFilter{Search: "upsert@"})
	if len(users) != 1 {
		t.Fatalf("expected 1 user after upsert, got %d", len(users))
	}
	if users[0].FirstName != "After" || users[0].Department != "Sales" {
		t.Errorf("expected updated fields, got %+v", users[0])
	}
}

func TestUserDepartmentsDistinct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := testUser("a@example.com")
	a.Department = "IT"
	CreateUser(ctx, database, a)

	b := testUser("b@example.com")
	b.Department = "IT"
	CreateUser(ctx, database, b)

	c := testUser("c@example.com")
	c.Department = "Finance"
	CreateUser(ctx, database, c)

	departments, err := UserDepartments(ctx, database)
	if err != nil {
		t.Fatalf("UserDepartments: %v", err)
	}
	if len(departments) != 2 {
		t.Errorf("expected 2 distinct departments, got %v", departments)
	}
}
