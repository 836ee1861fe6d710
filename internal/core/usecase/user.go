package usecase

import (
	"context"
	"fmt"
	"unicode"

	"github.com/google/uuid"
	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
)

// UserServiceArgs contains the arguments for the UserService.
type UserServiceArgs struct {
	// Repository is the repository for persistence operations.
	Repository ports.Repository

	// Changes receives an event for every committed registration. Optional.
	Changes ports.ChangeHandler
}

// NewUserService creates a new UserService.
func NewUserService(args UserServiceArgs) *UserService {
	return &UserService{repository: args.Repository, changes: args.Changes}
}

// UserService gathers the functionality around the user lifecycle.
type UserService struct {
	repository ports.Repository
	changes    ports.ChangeHandler
}

// Register registers a new user. It validates the inputs before touching the store
// and returns model.ErrDuplicateID if the identifier is already taken; in both cases
// the users table is left unchanged.
func (s *UserService) Register(ctx context.Context, args model.RegisterUserArgs) (*model.RegisterUserResponse, error) {
	if err := validateName("name", args.Name); err != nil {
		return nil, err
	}
	if err := validateName("surname", args.Surname); err != nil {
		return nil, err
	}
	if args.ID == "" {
		return nil, &model.ValidationError{Field: "user id", Reason: "must not be empty"}
	}

	exists, err := s.repository.UserExists(ctx, args.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking user id availability: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateID
	}

	user := &model.User{
		Name:    args.Name,
		Surname: args.Surname,
		ID:      args.ID,
	}
	if err := s.repository.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving user in repository: %w", err)
	}

	if s.changes != nil {
		event := model.ChangeEvent{ID: uuid.NewString(), UserAfter: user}
		if err := s.changes.Handle(ctx, event); err != nil {
			return nil, fmt.Errorf("error handling user change event: %w", err)
		}
	}

	return &model.RegisterUserResponse{User: *user}, nil
}

// Login opens a session for an existing user. It returns model.ErrNotFound if the
// identifier is not registered.
func (s *UserService) Login(ctx context.Context, args model.LoginArgs) (*model.LoginResponse, error) {
	if args.ID == "" {
		return nil, &model.ValidationError{Field: "user id", Reason: "must not be empty"}
	}

	exists, err := s.repository.UserExists(ctx, args.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking user id: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	return &model.LoginResponse{Session: model.Session{UserID: args.ID}}, nil
}

func validateName(field, value string) error {
	if value == "" {
		return &model.ValidationError{Field: field, Reason: "must not be empty"}
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return &model.ValidationError{Field: field, Reason: "must contain only letters"}
		}
	}
	return nil
}
