package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/store"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test_dcds.db")
	t.Cleanup(func() { os.Remove(dbPath) })

	repo, err := Open("sqlite", dbPath, RepositoryOptions{
		Hasher: store.NewBcryptHasher(4),
	}, Options{})
	if err != nil {
		t.Fatalf("failed to open repository: %v", err)
	}
	return repo
}

func TestCreateAccountAndVerify(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	result, err := repo.CreateAccount(ctx, "bob", "bob@x.com", "Abc12345!")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !result.Succeeded {
		t.Fatalf("expected success, got rejections: %v", result.Errors)
	}

	ok, err := repo.VerifyAndFetch(ctx, "bob", "Abc12345!")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}

	ok, err = repo.VerifyAndFetch(ctx, "bob", "wrong")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}

	ok, err = repo.VerifyAndFetch(ctx, "nosuchuser", "Abc12345!")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Error("expected unknown username to fail verification")
	}
}

func TestCreateAccountDuplicateRejections(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if result, err := repo.CreateAccount(ctx, "bob", "bob@x.com", "Abc12345!"); err != nil || !result.Succeeded {
		t.Fatalf("first create failed: %v / %v", result.Errors, err)
	}

	result, err := repo.CreateAccount(ctx, "bob", "bob@x.com", "Abc12345!")
	if err != nil {
		t.Fatalf("second create errored: %v", err)
	}
	if result.Succeeded {
		t.Fatal("expected duplicate registration to be rejected")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected username and email rejections, got %v", result.Errors)
	}
	if result.Errors[0].Description != "Username 'bob' is already taken." {
		t.Errorf("unexpected first rejection: %q", result.Errors[0].Description)
	}
	if result.Errors[1].Description != "Email 'bob@x.com' is already taken." {
		t.Errorf("unexpected second rejection: %q", result.Errors[1].Description)
	}

	idents, err := repo.ListIdentities(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(idents) != 1 {
		t.Errorf("expected a single identity, got %d", len(idents))
	}
}

func TestCreateAccountPolicyRejections(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	result, err := repo.CreateAccount(ctx, "bob", "bob@x.com", "weak")
	if err != nil {
		t.Fatalf("create errored: %v", err)
	}
	if result.Succeeded {
		t.Fatal("expected the password policy to reject")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected rejection reasons")
	}

	// All-or-nothing: the rejected account must not exist.
	ident, err := repo.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if ident != nil {
		t.Error("rejected registration must not leave a partial account")
	}
}

// A concurrent registration can commit between the uniqueness check and the
// insert. The rejection must name the field that actually collided, not
// assume the username.
func TestCreateAccountLostRaceReportsCollidingField(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Sneak a conflicting email in after the uniqueness check has passed,
	// right before the insert runs.
	err := repo.DB().Callback().Create().Before("gorm:create").Register("conflicting_signup", func(db *gorm.DB) {
		db.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO identities (id, username, email, password_hash) VALUES (?, ?, ?, ?)",
			"u-race", "eve", "bob@x.com", "x",
		)
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	result, err := repo.CreateAccount(ctx, "bob", "bob@x.com", "Abc12345!")
	if err != nil {
		t.Fatalf("lost race must be a rejection, not an infrastructure fault: %v", err)
	}
	if result.Succeeded {
		t.Fatal("expected the lost race to be rejected")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single rejection, got %v", result.Errors)
	}
	if result.Errors[0].Description != "Email 'bob@x.com' is already taken." {
		t.Errorf("rejection must name the colliding field: %q", result.Errors[0].Description)
	}
}

func TestFindByUsernameAbsent(t *testing.T) {
	repo := newTestRepository(t)

	ident, err := repo.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if ident != nil {
		t.Errorf("expected nil for an absent username, got %+v", ident)
	}
}

func TestListIdentitiesOrdered(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "bob"} {
		result, err := repo.CreateAccount(ctx, name, name+"@x.com", "Abc12345!")
		if err != nil || !result.Succeeded {
			t.Fatalf("create %s failed: %v / %v", name, result.Errors, err)
		}
	}

	idents, err := repo.ListIdentities(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(idents) != 3 {
		t.Fatalf("expected 3 identities, got %d", len(idents))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if idents[i].Username != want {
			t.Errorf("position %d: expected %s, got %s", i, want, idents[i].Username)
		}
	}
}

func TestUnknownProvider(t *testing.T) {
	_, err := Open("oracle", "dsn", RepositoryOptions{}, Options{})
	if err == nil {
		t.Error("expected an error for an unregistered provider")
	}
}
