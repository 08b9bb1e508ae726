package auth

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName string, userType domain.UserType) error
}

type Service struct {
	users    UserStore
	tokens   *TokenIssuer
	sessions *SessionStore
	logger   observability.Logger
}

func NewService(users UserStore, tokens *TokenIssuer, sessions *SessionStore, logger observability.Logger) *Service {
	return &Service{users: users, tokens: tokens, sessions: sessions, logger: logger}
}

func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string, userType domain.UserType) (*domain.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.Wrap(domain.ErrInvalidInput, "a valid email is required")
	}
	if len(password) < 6 {
		return nil, errors.Wrap(domain.ErrInvalidInput, "password must be at least 6 characters")
	}
	if userType == "" {
		userType = domain.UserAttendee
	}
	if userType != domain.UserAttendee && userType != domain.UserOrganizer {
		return nil, errors.Wrap(domain.ErrInvalidInput, "user type must be attendee or organizer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		UserType:     userType,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, errors.Wrap(domain.ErrConflict, "an account with this email already exists")
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID.String()).Info("user signed up")
	return s.startSession(user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthenticated
	}

	s.logger.WithField("user_id", user.ID.String()).Info("user signed in")
	return s.startSession(*user)
}

func (s *Service) SignOut(ctx context.Context) {
	s.sessions.set(nil, SignedOut)
}

// CurrentSession returns the process-wide session snapshot, or nil.
func (s *Service) CurrentSession() *domain.Session {
	return s.sessions.Current()
}

// Verify resolves a bearer token to its user snapshot.
func (s *Service) Verify(token string) (*domain.User, error) {
	return s.tokens.Parse(token)
}

func (s *Service) startSession(user domain.User) (*domain.Session, error) {
	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	sess := &domain.Session{User: user, AccessToken: token, ExpiresAt: expires}
	s.sessions.set(sess, SignedIn)
	return sess, nil
}
