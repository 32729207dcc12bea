package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/adapters/persistence/repositories"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/jwt"
	"rentwise-portal/internal/pkg/logger"
)

// ErrSessionExpired is returned when the cookie no longer maps to a live session
var ErrSessionExpired = &Error{Kind: domain.ErrUnauthorized, Message: "Your session has expired, please sign in again"}

// SessionService is the portal's auth state: one row per signed-in browser
type SessionService struct {
	repo   repositories.SessionRepository
	users  UserAPI
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, users UserAPI, secret string, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, users: users, secret: secret, ttl: ttl, now: time.Now}
}

// Begin opens a session for an upstream access token and returns the signed cookie value
func (s *SessionService) Begin(ctx context.Context, upstreamToken string) (*models.Session, string, error) {
	if upstreamToken == "" {
		return nil, "", newError(domain.ErrUnauthorized, "Sign-in did not return an access token")
	}

	now := s.now()
	expires := now.Add(s.ttl)
	session := &models.Session{
		ID:            uuid.NewString(),
		UpstreamToken: upstreamToken,
	}

	// The subject and expiry come from the token when it is a JWT; otherwise ask the API.
	if claims, err := jwt.PeekUpstreamToken(upstreamToken); err == nil && claims.Subject != "" {
		session.UserID = claims.Subject
		session.Email = claims.Email
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expires) {
			expires = claims.ExpiresAt.Time
		}
	} else {
		user, err := s.users.Me(ctx, upstreamToken)
		if err != nil {
			return nil, "", fromUpstream(err, "")
		}
		session.UserID = user.ID
		session.Email = user.Email
	}
	if !expires.After(now) {
		return nil, "", ErrSessionExpired
	}
	session.ExpiresAt = expires

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, "", err
	}

	cookie, err := jwt.GenerateSessionToken(session.ID, session.UserID, s.secret, expires.Sub(now))
	if err != nil {
		return nil, "", err
	}

	log := logger.FromContext(ctx)
	active, err := s.repo.CountActiveByUserID(ctx, session.UserID)
	if err != nil {
		log.Warn("failed to count active sessions", "user_id", session.UserID, "error", err)
	}
	log.Info("session started", "session_id", session.ID, "user_id", session.UserID, "active_sessions", active)
	return session, cookie, nil
}

// Resolve maps a cookie value to its live session
func (s *SessionService) Resolve(ctx context.Context, cookie string) (*models.Session, error) {
	if cookie == "" {
		return nil, ErrSessionExpired
	}
	claims, err := jwt.ValidateSessionToken(cookie, s.secret)
	if err != nil {
		return nil, ErrSessionExpired
	}

	session, err := s.repo.GetActive(ctx, claims.SessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Touch(ctx, session.ID, s.now()); err != nil {
		logger.FromContext(ctx).Warn("failed to touch session", "session_id", session.ID, "error", err)
	}
	return session, nil
}

// Check confirms the session with the marketplace. Sessions never outlive their token,
// so a 401 means the marketplace withdrew access and every session of the user ends.
func (s *SessionService) Check(ctx context.Context, session *models.Session) (*domain.User, error) {
	user, err := s.users.Me(ctx, session.UpstreamToken)
	if err != nil {
		err = fromUpstream(err, "")
		if errors.Is(err, domain.ErrUnauthorized) {
			log := logger.FromContext(ctx)
			if revokeErr := s.repo.RevokeAllByUserID(ctx, session.UserID); revokeErr != nil {
				log.Error("failed to revoke user sessions", "user_id", session.UserID, "error", revokeErr)
				if revokeErr := s.repo.Revoke(ctx, session.ID); revokeErr != nil {
					log.Error("failed to revoke session", "session_id", session.ID, "error", revokeErr)
				}
			} else {
				log.Info("marketplace rejected token, sessions revoked", "user_id", session.UserID)
			}
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if user.Role != nil && (session.RoleID == nil || *session.RoleID != int(*user.Role)) {
		if err := s.SetRole(ctx, session, *user.Role); err != nil {
			logger.FromContext(ctx).Warn("failed to record session role", "session_id", session.ID, "error", err)
		}
	}
	return user, nil
}

// SetRole records the role the session signed in with
func (s *SessionService) SetRole(ctx context.Context, session *models.Session, role domain.Role) error {
	if err := s.repo.SetRole(ctx, session.ID, int(role)); err != nil {
		return err
	}
	id := int(role)
	session.RoleID = &id
	return nil
}

// End revokes the session
func (s *SessionService) End(ctx context.Context, session *models.Session) error {
	if err := s.repo.Revoke(ctx, session.ID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("session ended", "session_id", session.ID)
	return nil
}

// Purge deletes sessions that expired or were revoked before now
func (s *SessionService) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

// SessionRole returns the session's recorded role, if any
func SessionRole(session *models.Session) (domain.Role, bool) {
	if session == nil || session.RoleID == nil {
		return 0, false
	}
	r := domain.Role(*session.RoleID)
	return r, r.Valid()
}
