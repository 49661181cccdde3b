package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository"
	"github.com/coolfootwear/storefront/internal/validation"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// SignUpForm is the registration form.
type SignUpForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// AdminCredentials are the configured back-office username and password.
type AdminCredentials struct {
	Username string
	Password string
}

// AccountService handles customer accounts and the admin login.
type AccountService struct {
	users    repository.UserRepository
	carts    *CartService
	wishlist *WishlistService
	admin    AdminCredentials
	now      func() time.Time
}

func NewAccountService(users repository.UserRepository, carts *CartService, wishlist *WishlistService, admin AdminCredentials) *AccountService {
	return &AccountService{
		users:    users,
		carts:    carts,
		wishlist: wishlist,
		admin:    admin,
		now:      time.Now,
	}
}

// SignUp validates the form and registers a new user. A taken email yields
// repository.ErrEmailExists.
func (s *AccountService) SignUp(ctx context.Context, form SignUpForm) (*entity.User, error) {
	if errs := validation.SignUp.Validate(map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"password": form.Password,
		"phone":    form.Phone,
	}); errs != nil {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:        strings.TrimSpace(form.Phone),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("Service: User registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if errs := validation.Login.Validate(map[string]string{
		"email":    email,
		"password": password,
	}); errs != nil {
		return nil, errs
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AdminLogin checks the back-office credentials, reporting one message per field.
func (s *AccountService) AdminLogin(username, password string) error {
	errs := validation.Errors{}
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)

	switch {
	case username == "":
		errs["username"] = "Username is required"
	case !constantTimeEqual(username, s.admin.Username):
		errs["username"] = "Wrong Username"
	}
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case s.admin.Password == "" || !constantTimeEqual(password, s.admin.Password):
		errs["password"] = "Wrong Password"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Logout forgets the browser's cart and wishlist.
func (s *AccountService) Logout(ctx context.Context, owner string) error {
	if err := s.carts.Clear(ctx, owner); err != nil {
		return fmt.Errorf("failed to clear cart on logout: %w", err)
	}
	if err := s.wishlist.Clear(ctx, owner); err != nil {
		return fmt.Errorf("failed to clear wishlist on logout: %w", err)
	}
	return nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Users lists registered users whose id, name or email contains term.
func (s *AccountService) Users(ctx context.Context, term string) ([]entity.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users, nil
	}

	out := []entity.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.ID), term) ||
			strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, userID string) error {
	slog.Info("Service: Deleting user", "user_id", userID)
	return s.users.Delete(ctx, userID)
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
