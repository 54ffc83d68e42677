package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/store"
)

// Repository implements store.CredentialStore on top of GORM. It owns
// password hashing and the store-side password policy; the authentication
// service only sees structured results.
type Repository struct {
	db     *gorm.DB
	hasher store.Hasher
	policy *store.PasswordPolicy
	newID  func() string
}

// RepositoryOptions supplies the hashing and policy collaborators. Zero
// values fall back to bcrypt at the default cost and the default policy.
type RepositoryOptions struct {
	Hasher store.Hasher
	Policy *store.PasswordPolicy
	NewID  func() string
}

func NewRepository(db *gorm.DB, opts RepositoryOptions) *Repository {
	if opts.Hasher == nil {
		opts.Hasher = store.NewBcryptHasher(0)
	}
	if opts.Policy == nil {
		opts.Policy = store.DefaultPasswordPolicy()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Repository{db: db, hasher: opts.Hasher, policy: opts.Policy, newID: opts.NewID}
}

// DB exposes the underlying handle for migrations and tests.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// CreateAccount validates the password against the store policy, checks
// username/email uniqueness, and inserts the account in one transaction.
// Rejections are collected in order; only infrastructure faults surface as
// errors.
func (r *Repository) CreateAccount(ctx context.Context, username, email, password string) (store.CreateResult, error) {
	rejections := r.policy.Check(password)

	var result store.CreateResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		duplicates, err := duplicateRejections(tx, username, email)
		if err != nil {
			return err
		}
		rejections = append(rejections, duplicates...)

		if len(rejections) > 0 {
			result = store.CreateResult{Succeeded: false, Errors: rejections}
			return nil
		}

		hash, err := r.hasher.Hash(password)
		if err != nil {
			return err
		}

		ident := identity.Identity{
			ID:           r.newID(),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		}
		if err := tx.Create(&ident).Error; err != nil {
			// A concurrent registration can win the race between the
			// uniqueness check and the insert. Re-query to report which
			// field actually collided.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				duplicates, derr := duplicateRejections(tx, username, email)
				if derr != nil {
					return derr
				}
				if len(duplicates) == 0 {
					return err
				}
				result = store.CreateResult{Succeeded: false, Errors: duplicates}
				return nil
			}
			return err
		}

		result = store.CreateResult{Succeeded: true}
		return nil
	})
	if err != nil {
		return store.CreateResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return result, nil
}

// duplicateRejections reports which of username and email already exist, in
// that order.
func duplicateRejections(tx *gorm.DB, username, email string) ([]store.Rejection, error) {
	var rejections []store.Rejection

	var count int64
	if err := tx.Model(&identity.Identity{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		rejections = append(rejections, store.Rejection{
			Description: fmt.Sprintf("Username '%s' is already taken.", username),
		})
	}

	if err := tx.Model(&identity.Identity{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		rejections = append(rejections, store.Rejection{
			Description: fmt.Sprintf("Email '%s' is already taken.", email),
		})
	}

	return rejections, nil
}

// VerifyAndFetch reports whether the username/password pair matches a stored
// account. Unknown usernames and wrong passwords are indistinguishable.
func (r *Repository) VerifyAndFetch(ctx context.Context, username, password string) (bool, error) {
	var ident identity.Identity
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&ident).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return r.hasher.Compare(password, ident.PasswordHash), nil
}

// FindByUsername returns the account for username, or nil when absent.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*identity.Identity, error) {
	var ident identity.Identity
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&ident).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &ident, nil
}

// ListIdentities returns every account ordered by username.
func (r *Repository) ListIdentities(ctx context.Context) ([]identity.Identity, error) {
	var idents []identity.Identity
	if err := r.db.WithContext(ctx).Order("username").Find(&idents).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return idents, nil
}
