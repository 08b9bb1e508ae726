package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

const notificationPageSize = 10

type ProfileStore interface {
	UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName string, userType domain.UserType) error
}

// UserService covers the signed-in user's own data: notifications and
// profile edits.
type UserService struct {
	profiles ProfileStore
	notifs   NotificationStore
	logger   observability.Logger
}

func NewUserService(profiles ProfileStore, notifs NotificationStore, logger observability.Logger) *UserService {
	return &UserService{profiles: profiles, notifs: notifs, logger: logger}
}

// Notifications returns the newest page for the user. A store failure
// degrades to an empty list; the bell just shows nothing.
func (s *UserService) Notifications(ctx context.Context, user *domain.User) ([]domain.Notification, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	notifs, err := s.notifs.ListNotifications(ctx, user.ID, notificationPageSize)
	if err != nil {
		s.logger.Error("failed to fetch notifications", err)
		return []domain.Notification{}, nil
	}
	return notifs, nil
}

func (s *UserService) MarkRead(ctx context.Context, user *domain.User, id uuid.UUID) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	return s.notifs.MarkNotificationRead(ctx, id, user.ID)
}

type UpdateProfileInput struct {
	FullName string          `json:"full_name"`
	UserType domain.UserType `json:"user_type"`
}

func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, in UpdateProfileInput) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if in.FullName == "" {
		return errors.Wrap(domain.ErrInvalidInput, "full name is required")
	}
	if in.UserType != domain.UserAttendee && in.UserType != domain.UserOrganizer {
		return errors.Wrap(domain.ErrInvalidInput, "unknown user type")
	}
	return s.profiles.UpdateUserProfile(ctx, user.ID, in.FullName, in.UserType)
}
