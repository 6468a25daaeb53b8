package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/mail"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const resetTokenTTL = time.Hour

// AuthService handles signup, login, sessions and password resets.
type AuthService struct {
	users      *repository.UserRepository
	sessions   *repository.SessionRepository
	mailer     mail.Mailer
	baseURL    string
	sessionTTL time.Duration
}

func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, mailer mail.Mailer, baseURL string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		mailer:     mailer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionTTL: sessionTTL,
	}
}

// Signup creates an account and logs it in immediately.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*model.User, *model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, validationErr("email", "required")
	}
	if password == "" {
		return nil, nil, validationErr("password", "required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, nil, err
	}

	session, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, session, nil
}

// Login checks credentials and opens a session. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout drops the session for the given token. A token that resolves to
// nothing is fine; logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// Authenticate resolves a session token to its user. A missing, malformed
// or expired token yields (nil, nil): no identity, not an error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// RequestPasswordReset issues a reset token and mails a link. It reports
// success for unknown emails too, so callers cannot probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return validationErr("email", "required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[info] password reset requested for unknown email")
		return nil
	} else if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your account.\nOpen the link below within one hour to choose a new password:\n\n%s\n\nIf you did not ask for this, ignore this mail.\n", user.Name, link)
	return s.mailer.Send(user.Email, "Reset your password", body)
}

// ResetPassword redeems a reset token. On success the password is replaced,
// the token is cleared and every open session of the user is closed.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return validationErr("password", "required")
	}
	if token == "" {
		return ErrResetTokenInvalid
	}

	user, err := s.users.FindByResetTokenHash(ctx, hashToken(token))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrResetTokenInvalid
	} else if err != nil {
		return fmt.Errorf("find user by token: %w", err)
	}
	if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.sessions.DeleteByUser(ctx, user.ID)
}

func (s *AuthService) newSession(ctx context.Context, userID uint) (*model.Session, error) {
	session := model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
