package services

import (
	"context"
	"testing"

	"github.com/skills4mind/events-api/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountRepo struct {
	accounts map[primitive.ObjectID]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[primitive.ObjectID]*models.Account{}}
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account *models.Account) (*models.Account, error) {
	for _, existing := range f.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, models.ErrConflict
		}
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeAccountRepo) GetAccountByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return account, nil
}

func (f *fakeAccountRepo) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAccountRepo) FindAccountByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAccountRepo) UpdateAccount(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if username, ok := fields["username"].(string); ok {
		account.Username = username
	}
	if email, ok := fields["email"].(string); ok {
		account.Email = email
	}
	if hash, ok := fields["password_hash"].(string); ok {
		account.PasswordHash = hash
	}
	return account, nil
}

func (f *fakeAccountRepo) DeleteAccount(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(f.accounts, id)
	return account, nil
}

func (f *fakeAccountRepo) AccountsWithEvents(context.Context) ([]bson.M, error) {
	return []bson.M{}, nil
}

func (f *fakeAccountRepo) EnsureAccountIndexes(context.Context) error {
	return nil
}

func seedAccount(repo *fakeAccountRepo, username, email, password string) *models.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	account := &models.Account{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	repo.accounts[account.ID] = account
	return account
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepo(), "secret")

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@b.com", Password: "secret123"}},
		{"invalid email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret123"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@b.com", Password: "12345"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestRegisterNormalizesEmailAndIssuesToken(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepo(), "secret")

	account, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "secret123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secret123", account.PasswordHash)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	_, _, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope-nope")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "secret123")

	assert.ErrorIs(t, wrongPassword, models.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginSucceeds(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	account, token, err := svc.Login(context.Background(), "Alice@Example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEmpty(t, token)
}

func TestChangeUsernameRequiresPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	_, err := svc.ChangeUsername(context.Background(), account.ID.Hex(), "newalice", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	updated, err := svc.ChangeUsername(context.Background(), account.ID.Hex(), "newalice", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "newalice", updated.Username)
}

func TestChangeUsernameConflictOnlyWithOtherAccounts(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedAccount(repo, "alice", "alice@example.com", "secret123")
	seedAccount(repo, "bob", "bob@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	// Taking another account's username fails.
	_, err := svc.ChangeUsername(context.Background(), account.ID.Hex(), "bob", "secret123")
	assert.ErrorIs(t, err, models.ErrConflict)

	// Re-submitting the current username is a no-op that succeeds.
	updated, err := svc.ChangeUsername(context.Background(), account.ID.Hex(), "alice", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	assert.ErrorIs(t, svc.ChangePassword(context.Background(), account.ID.Hex(), "wrong", "newsecret"), models.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), account.ID.Hex(), "secret123", "short"), models.ErrValidation)

	assert.NoError(t, svc.ChangePassword(context.Background(), account.ID.Hex(), "secret123", "newsecret"))

	_, _, err := svc.Login(context.Background(), "alice@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateAccountPartial(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	email := "Fresh@Example.com"
	updated, err := svc.UpdateAccount(context.Background(), account.ID.Hex(), UpdateAccountInput{Email: &email})
	assert.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
}

func TestUpdateAccountRejectsEmptyPatch(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	_, err := svc.UpdateAccount(context.Background(), account.ID.Hex(), UpdateAccountInput{})
	assert.ErrorIs(t, err, models.ErrValidation)

	empty := ""
	_, err = svc.UpdateAccount(context.Background(), account.ID.Hex(), UpdateAccountInput{Username: &empty})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUsernameExists(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, "alice", "alice@example.com", "secret123")
	svc := NewAccountService(repo, "secret")

	exists, err := svc.UsernameExists(context.Background(), "alice")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UsernameExists(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.UsernameExists(context.Background(), "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteAccountMalformedID(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepo(), "secret")

	_, err := svc.DeleteAccount(context.Background(), "zzz")
	assert.ErrorIs(t, err, models.ErrValidation)
}
