package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/todo-api/internal/challenge"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/session"
	"github.com/yukikurage/todo-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrUsernameTooLong      = fmt.Errorf("username must be at most %d characters", constants.MaxUsernameLength)
	ErrPasswordTooLong      = fmt.Errorf("password must be at most %d bytes", constants.MaxPasswordBytes)
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidChallenge     = errors.New("challenge failed or expired")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles signup, login and the shared session slot.
type AuthService struct {
	userRepo   repository.UserRepository
	challenges challenge.Store
	sessions   *session.Holder
	hasher     *utils.PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, challenges challenge.Store, sessions *session.Holder, hasher *utils.PasswordHasher) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		challenges: challenges,
		sessions:   sessions,
		hasher:     hasher,
	}
}

// SignupInput represents the credentials a new user wants to register.
type SignupInput struct {
	Username string
	Password string
}

// Signup checks that the username is free and issues a bot-check challenge.
// The account is not created until the challenge is solved.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*challenge.Challenge, error) {
	if err := validateCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	ch, err := s.challenges.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue challenge: %w", err)
	}

	return &ch, nil
}

// SubmitChallengeInput carries the solved challenge together with the credentials.
type SubmitChallengeInput struct {
	ChallengeID string
	Answer      int
	Username    string
	Password    string
}

// SubmitChallenge verifies the bot-check and, on success, creates the user and logs them in.
func (s *AuthService) SubmitChallenge(ctx context.Context, input SubmitChallengeInput) (*models.User, error) {
	if err := validateCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}

	ok, err := s.challenges.Verify(ctx, input.ChallengeID, input.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to verify challenge: %w", err)
	}
	if !ok {
		return nil, ErrInvalidChallenge
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	s.sessions.SetCurrentUser(user.ID)
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and makes the user current. A credential
// mismatch logs out whoever was current.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.sessions.Clear()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, input.Password); err != nil {
		s.sessions.Clear()
		return nil, ErrInvalidCredentials
	}

	s.sessions.SetCurrentUser(user.ID)
	return user, nil
}

// Logout clears the session slot.
func (s *AuthService) Logout() {
	s.sessions.Clear()
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func validateCredentials(username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if len(username) > constants.MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if len(password) > constants.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
