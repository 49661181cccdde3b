package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolfootwear/storefront/internal/repository"
	"github.com/coolfootwear/storefront/internal/validation"
)

func newAccounts(f *fixture) *AccountService {
	return NewAccountService(f.users, f.carts, f.wishlists, AdminCredentials{Username: "admin", Password: "s3cret"})
}

func validSignUp() SignUpForm {
	return SignUpForm{Name: "Asha", Email: "asha@example.com", Password: "secret1", Phone: "9876543210"}
}

func TestAccountService_SignUpAndLogin(t *testing.T) {
	ctx := context.Background()
	accounts := newAccounts(newFixture())

	user, err := accounts.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = accounts.SignUp(ctx, validSignUp())
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	got, err := accounts.Login(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = accounts.Login(ctx, "asha@example.com", "wrong-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = accounts.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_SignUpValidation(t *testing.T) {
	form := validSignUp()
	form.Name = "As"
	form.Phone = "12345"

	_, err := newAccounts(newFixture()).SignUp(context.Background(), form)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Name must be at least 3 characters", errs["name"])
	assert.Contains(t, errs, "phone")
	assert.NotContains(t, errs, "email")
}

func TestAccountService_AdminLogin(t *testing.T) {
	accounts := newAccounts(newFixture())

	assert.NoError(t, accounts.AdminLogin("admin", "s3cret"))

	var errs validation.Errors
	require.ErrorAs(t, accounts.AdminLogin("", "nope"), &errs)
	assert.Equal(t, validation.Errors{"username": "Username is required", "password": "Wrong Password"}, errs)

	require.ErrorAs(t, accounts.AdminLogin("root", ""), &errs)
	assert.Equal(t, validation.Errors{"username": "Wrong Username", "password": "Password is required"}, errs)
}

func TestAccountService_LogoutClearsCartAndWishlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	accounts := newAccounts(f)

	_, err := f.carts.AddProduct(ctx, "b1", "p1")
	require.NoError(t, err)
	_, err = f.wishlists.Add(ctx, "b1", "p2")
	require.NoError(t, err)

	require.NoError(t, accounts.Logout(ctx, "b1"))

	view, err := f.carts.View(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, view.CartProducts)
	items, err := f.wishlists.Items(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAccountService_UsersSearchAndDelete(t *testing.T) {
	ctx := context.Background()
	accounts := newAccounts(newFixture())

	asha, err := accounts.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	other := validSignUp()
	other.Name, other.Email = "Ravi", "ravi@example.com"
	_, err = accounts.SignUp(ctx, other)
	require.NoError(t, err)

	users, err := accounts.Users(ctx, "ASHA")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, asha.ID, users[0].ID)

	require.NoError(t, accounts.DeleteUser(ctx, asha.ID))
	assert.ErrorIs(t, accounts.DeleteUser(ctx, asha.ID), repository.ErrNotFound)

	users, err = accounts.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
