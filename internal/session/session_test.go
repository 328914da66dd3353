package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
)

type fakeAccountSource struct {
	accounts map[string]Account
}

func (f *fakeAccountSource) FindSessionAccount(_ context.Context, id string) (Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return Account{}, inErrors.ErrAccountNotFound
	}
	return account, nil
}

func newTestResolver() (*Resolver, *fakeAccountSource) {
	accounts := &fakeAccountSource{accounts: map[string]Account{
		"account-1": {ID: "account-1", Name: "Amélie", Email: "amelie@example.com"},
	}}
	return NewResolver("test-secret-key", accounts, nil), accounts
}

func TestResolveMintsGuestWithoutCredentials(t *testing.T) {
	resolver, _ := newTestResolver()

	identity := resolver.Resolve(context.Background(), "", "")

	assert.False(t, identity.IsAccount())
	assert.NotEmpty(t, identity.GuestID)
	assert.True(t, identity.MintedGuest)
	assert.False(t, identity.DiscardAccountToken)
}

func TestResolveReusesPresentedGuestToken(t *testing.T) {
	resolver, _ := newTestResolver()

	identity := resolver.Resolve(context.Background(), "", "guest-abc")

	assert.Equal(t, "guest-abc", identity.GuestID)
	assert.False(t, identity.MintedGuest)
}

func TestResolveVerifiesAccountToken(t *testing.T) {
	resolver, _ := newTestResolver()
	token, err := resolver.IssueAccountToken(context.Background(), "account-1")
	require.NoError(t, err)

	identity := resolver.Resolve(context.Background(), token, "")

	require.True(t, identity.IsAccount())
	assert.Equal(t, "account-1", identity.Account.ID)
	assert.Equal(t, "amelie@example.com", identity.Account.Email)
	assert.False(t, identity.DiscardAccountToken)
}

func TestResolveDowngradesBadTokenToGuest(t *testing.T) {
	tests := []struct {
		name         string
		accountToken func(t *testing.T) string
	}{
		{
			name:         "malformed token",
			accountToken: func(_ *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "token signed with a different key",
			accountToken: func(t *testing.T) string {
				other := NewResolver("other-secret-key", &fakeAccountSource{}, nil)
				token, err := other.IssueAccountToken(context.Background(), "account-1")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "token for an account that no longer exists",
			accountToken: func(t *testing.T) string {
				resolver, _ := newTestResolver()
				token, err := resolver.IssueAccountToken(context.Background(), "gone")
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _ := newTestResolver()

			identity := resolver.Resolve(context.Background(), tt.accountToken(t), "guest-abc")

			assert.False(t, identity.IsAccount(), "a bad token must fail open to guest identity")
			assert.Equal(t, "guest-abc", identity.GuestID)
			assert.True(t, identity.DiscardAccountToken)
		})
	}
}

func TestResolveDowngradeMintsGuestWhenNoGuestToken(t *testing.T) {
	resolver, _ := newTestResolver()

	identity := resolver.Resolve(context.Background(), "not-a-jwt", "")

	assert.False(t, identity.IsAccount())
	assert.NotEmpty(t, identity.GuestID)
	assert.True(t, identity.MintedGuest)
	assert.True(t, identity.DiscardAccountToken)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	identity := Identity{GuestID: "guest-abc"}

	c := AttachIdentity(context.Background(), identity)

	assert.Equal(t, identity, IdentityFromContext(c))
	assert.Equal(t, Identity{}, IdentityFromContext(context.Background()))
}
