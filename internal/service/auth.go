package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"community-board/internal/domain"
	"community-board/internal/repository"
)

// MinPasswordLen is the registration floor.
const MinPasswordLen = 6

// AuthService handles registration, login and logout. Logins produce a signed
// token whose session ID is also recorded server-side, so logout invalidates
// immediately even while the signature is still valid.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
}

// NewAuthService creates the service. secret must be non-empty; ttlHours
// falls back to 24.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, secret string, ttlHours int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if sessionRepo == nil {
		panic("SessionRepository cannot be nil for AuthService")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret cannot be empty")
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(secret),
		sessionTTL:  time.Duration(ttlHours) * time.Hour,
	}, nil
}

// Register creates an account. confirm is the confirmation field from the
// signup form; pass it equal to password when no confirmation is collected.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirm string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	username, okU := cleanText(username, MaxNameLen)
	email, okE := cleanText(email, MaxNameLen)
	if !okU || !okE {
		return nil, ErrValidationFailed
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	hashed, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{Username: username, Email: email, Password: hashed}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration failed: username or email already exists")
			return nil, ErrDuplicateIdentity
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // never hand the hash back out
	return user, nil
}

// Login verifies the credentials, records a session and returns the signed
// token the client holds. Unknown user and wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repository returned nil user without error")
		return "", ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	session := domain.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
	}
	if err := s.sessionRepo.Save(ctx, session, s.sessionTTL); err != nil {
		logCtx.WithError(err).Error("Failed to save session during login")
		return "", ErrInternalServer
	}

	token, err := s.signToken(session)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign session token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, nil
}

// Logout invalidates the session named by the token. A token that no longer
// parses or is already gone is treated as logged out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		logrus.WithError(err).WithField("session_id", session.ID).Error("Failed to delete session during logout")
		return ErrInternalServer
	}
	logrus.WithField("user_id", session.UserID).Info("User logged out")
	return nil
}

// Authenticate resolves a client token to a live session: the signature and
// expiry must verify and the server-side record must still exist.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*domain.Session, error) {
	claims, err := s.parseToken(tokenStr)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, ErrAuthenticationFailed
	}
	session, err := s.sessionRepo.Find(ctx, sid)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return session, nil
}

// SessionTTL exposes the configured session lifetime (cookie Max-Age).
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) signToken(session domain.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":      session.ID,
		"user_id":  session.UserID,
		"username": session.Username,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *AuthService) parseToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
