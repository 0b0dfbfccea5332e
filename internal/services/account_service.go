package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const passwordMinLength = 6

type AccountService struct {
	accounts    models.AccountRepo
	tokenSecret string
}

func NewAccountService(accounts models.AccountRepo, tokenSecret string) *AccountService {
	return &AccountService{
		accounts:    accounts,
		tokenSecret: tokenSecret,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.ErrInvalidCredentials
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, passwordMinLength)
	}
	return nil
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (as *AccountService) Register(ctx context.Context, input RegisterInput) (*models.Account, string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if err := models.Validate.Var(input.Email, "required,email"); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email address", models.ErrValidation)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := as.accounts.FindAccountByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: email", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}
	if _, err := as.accounts.FindAccountByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("%w: username", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	account, err := as.accounts.CreateAccount(ctx, &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.SignToken(as.tokenSecret, account.ID.Hex(), account.Email)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// Login deliberately reports the same error for an unknown email and a
// wrong password.
func (as *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	account, err := as.accounts.FindAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := checkPassword(account.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := helpers.SignToken(as.tokenSecret, account.ID.Hex(), account.Email)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

func (as *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return as.accounts.GetAccountByID(ctx, oid)
}

// ChangeUsername requires re-authentication with the account password.
// Setting the account's own current username is a no-op that succeeds.
func (as *AccountService) ChangeUsername(ctx context.Context, id, newUsername, password string) (*models.Account, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	newUsername = strings.TrimSpace(newUsername)
	if newUsername == "" {
		return nil, fmt.Errorf("%w: username must not be empty", models.ErrValidation)
	}

	account, err := as.accounts.GetAccountByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := checkPassword(account.PasswordHash, password); err != nil {
		return nil, err
	}

	if newUsername != account.Username {
		if existing, err := as.accounts.FindAccountByUsername(ctx, newUsername); err == nil && existing.ID != account.ID {
			return nil, fmt.Errorf("%w: username", models.ErrConflict)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	return as.accounts.UpdateAccount(ctx, oid, bson.M{"username": newUsername})
}

func (as *AccountService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	account, err := as.accounts.GetAccountByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := checkPassword(account.PasswordHash, oldPassword); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = as.accounts.UpdateAccount(ctx, oid, bson.M{"password_hash": hash})
	return err
}

type UpdateAccountInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateAccount applies a partial update. Uniqueness is checked against
// other accounts only; re-submitting the current value succeeds.
func (as *AccountService) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*models.Account, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	account, err := as.accounts.GetAccountByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", models.ErrValidation)
		}
		if username != account.Username {
			if existing, err := as.accounts.FindAccountByUsername(ctx, username); err == nil && existing.ID != account.ID {
				return nil, fmt.Errorf("%w: username", models.ErrConflict)
			} else if err != nil && !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
		}
		fields["username"] = username
	}

	if input.Email != nil {
		if err := models.Validate.Var(*input.Email, "required,email"); err != nil {
			return nil, fmt.Errorf("%w: invalid email address", models.ErrValidation)
		}
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != account.Email {
			if existing, err := as.accounts.FindAccountByEmail(ctx, email); err == nil && existing.ID != account.ID {
				return nil, fmt.Errorf("%w: email", models.ErrConflict)
			} else if err != nil && !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
		}
		fields["email"] = email
	}

	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}

	return as.accounts.UpdateAccount(ctx, oid, fields)
}

func (as *AccountService) DeleteAccount(ctx context.Context, id string) (*models.Account, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return as.accounts.DeleteAccount(ctx, oid)
}

func (as *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, fmt.Errorf("%w: username is required", models.ErrValidation)
	}

	_, err := as.accounts.FindAccountByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (as *AccountService) AccountsWithEvents(ctx context.Context) ([]bson.M, error) {
	return as.accounts.AccountsWithEvents(ctx)
}
