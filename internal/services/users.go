package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MsgUserNameRequired     = "Name is a required attribute"
	MsgUserEmailRequired    = "Email is a required attribute"
	MsgUserEmailInvalid     = "Email is invalid"
	MsgUserPasswordRequired = "Password is a required attribute"
	MsgUserEmailTaken       = "A user with this email already exists"
	MsgUserNotFound         = "User not found"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

var validate = validator.New(validator.WithRequiredStructEnabled())

type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	users *store.UserRepository
	cost  int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: store.NewUserRepository(db), cost: bcrypt.DefaultCost}
}

func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case name == "":
		return nil, apperr.Validation(MsgUserNameRequired)
	case email == "":
		return nil, apperr.Validation(MsgUserEmailRequired)
	case validate.Var(email, "email") != nil:
		return nil, apperr.Validation(MsgUserEmailInvalid)
	case req.Password == "":
		return nil, apperr.Validation(MsgUserPasswordRequired)
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Validation(MsgUserEmailTaken)
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Storage(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	u := &models.User{Name: name, Email: email, Password: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Validation(MsgUserEmailTaken)
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, MsgUserNotFound)
	}
	return u, nil
}

// List returns the users visible to caller. Users only ever see themselves.
func (s *UserService) List(ctx context.Context, caller access.Caller) ([]models.User, error) {
	u, err := s.Get(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return []models.User{*u}, nil
}
