package service

import (
	"testing"

	"bakery-backoffice/internal/dbtest"
	"bakery-backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueTokenByUsernameAndEmail(t *testing.T) {
	db := dbtest.Open(t)
	users := NewUserService(db)
	auth := NewAuthService(db, testSecret)

	bob, err := users.Create(&model.UserInput{Username: "bob", Email: "bob@x.com"}, nil)
	require.NoError(t, err)

	token, err := auth.IssueToken("bob", "bob@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	again, err := auth.IssueToken("bob", "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, token, again)

	_, err = auth.IssueToken("bob", "wrong@x.com")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.IssueToken("nobody", "bob@x.com")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.IssueToken("", "")
	assert.ElementsMatch(t, []string{"username", "password"}, fieldsOf(t, err))

	user, err := auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, user.ID)
	require.NotNil(t, user.Profile)
}

func TestAuthenticateRejects(t *testing.T) {
	db := dbtest.Open(t)
	users := NewUserService(db)
	auth := NewAuthService(db, testSecret)

	bob, err := users.Create(&model.UserInput{Username: "bob", Email: "bob@x.com"}, nil)
	require.NoError(t, err)
	token, err := auth.IssueToken("bob", "bob@x.com")
	require.NoError(t, err)

	_, err = auth.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	other := NewAuthService(db, "another-secret")
	_, err = other.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// deleting the user revokes the stored token
	require.NoError(t, users.Delete(bob.ID, nil))
	_, err = auth.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuditLogIsAppendOnly(t *testing.T) {
	db := dbtest.Open(t)
	users := NewUserService(db)
	audit := newAuditService(db)

	alice, err := users.Create(&model.UserInput{Username: "alice"}, nil)
	require.NoError(t, err)

	entry, err := audit.Create(&model.AuditLogInput{Action: "stock counted", Details: "all good"}, &alice.ID)
	require.NoError(t, err)
	require.NotNil(t, entry.User)
	assert.Equal(t, "alice", entry.User.Username)

	assert.ErrorIs(t, audit.Update(entry.ID), ErrImmutable)
	assert.ErrorIs(t, audit.Update(9999), ErrNotFound)

	_, err = audit.Create(&model.AuditLogInput{User: func() *uint { v := uint(404); return &v }()}, nil)
	assert.ElementsMatch(t, []string{"action", "user"}, fieldsOf(t, err))

	require.NoError(t, audit.Delete(entry.ID))
	_, err = audit.Get(entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
