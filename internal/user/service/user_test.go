package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/session"
	"github.com/lumiere-atelier/storefront/internal/user/repository"
	"github.com/lumiere-atelier/storefront/user/pkg/request"
)

type fakeAccountRepository struct {
	byEmail map[string]repository.Account
	byID    map[string]repository.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		byEmail: map[string]repository.Account{},
		byID:    map[string]repository.Account{},
	}
}

func (f *fakeAccountRepository) Insert(
	_ context.Context,
	account repository.Account,
) (repository.Account, error) {
	if _, ok := f.byEmail[account.Email]; ok {
		return repository.Account{}, inErrors.ErrEmailInUse
	}
	if account.ID == "" {
		account.ID = "account-" + account.Email
	}
	f.byEmail[account.Email] = account
	f.byID[account.ID] = account
	return account, nil
}

func (f *fakeAccountRepository) FindByEmail(
	_ context.Context,
	email string,
) (repository.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return repository.Account{}, inErrors.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountRepository) FindByID(
	_ context.Context,
	id string,
) (repository.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return repository.Account{}, inErrors.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountRepository) FindSessionAccount(
	c context.Context,
	id string,
) (session.Account, error) {
	account, err := f.FindByID(c, id)
	if err != nil {
		return session.Account{}, err
	}
	return session.Account{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

func newTestService() (UserService, *fakeAccountRepository) {
	repo := newFakeAccountRepository()
	resolver := session.NewResolver("test-secret-key", repo, nil)
	return NewUserService(repo, resolver), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	account, token, err := svc.Register(context.Background(), request.Register{
		Name:     "Amélie Laurent",
		Email:    "Amelie@Example.com",
		Password: "sapphire-and-gold",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.EqualValues(t, "amelie@example.com", account.Email, "email should be lowercased")
	stored := repo.byEmail["amelie@example.com"]
	assert.NotEqualValues(t, "sapphire-and-gold", stored.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), request.Register{
		Name:     "Amélie Laurent",
		Email:    "amelie@example.com",
		Password: "sapphire-and-gold",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), request.Register{
		Name:     "Someone Else",
		Email:    "AMELIE@example.com",
		Password: "another-password",
	})

	assert.ErrorIs(t, err, inErrors.ErrEmailInUse)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), request.Register{
		Name:     "Amélie Laurent",
		Email:    "amelie@example.com",
		Password: "sapphire-and-gold",
	})
	require.NoError(t, err)

	t.Run("correct credentials return the account and a token", func(t *testing.T) {
		account, token, err := svc.Login(context.Background(), request.Login{
			Email:    "amelie@example.com",
			Password: "sapphire-and-gold",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.EqualValues(t, "amelie@example.com", account.Email)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), request.Login{
			Email:    "amelie@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected with the same error as a wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), request.Login{
			Email:    "nobody@example.com",
			Password: "sapphire-and-gold",
		})

		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	})
}
