package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/db"
)

// User is the durable identity record for one chat-platform user.
type User struct {
	ID                int64
	KakaoID           string
	PlusfriendUserKey sql.NullString
	AppUserID         sql.NullString
	KakaoAdmin        bool
}

// Synced reports whether the account has at least one secondary platform
// identifier linked. Mutating flows require this before touching upstream.
func (u *User) Synced() bool {
	return u.PlusfriendUserKey.Valid || u.AppUserID.Valid
}

// UserStore persists User records in PostgreSQL.
type UserStore struct {
	db  *db.DB
	log *zap.Logger
}

func NewUserStore(database *db.DB, log *zap.Logger) *UserStore {
	return &UserStore{db: database, log: log}
}

const userColumns = "id, kakao_id, plusfriend_user_key, app_user_id, kakao_admin"

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.KakaoID, &u.PlusfriendUserKey, &u.AppUserID, &u.KakaoAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// find looks a user up by identifier precedence: plusfriend user key first,
// then app user id, then kakao id. The first non-null match wins.
func (s *UserStore) find(ctx context.Context, kakaoID, plusfriendKey, appUserID string) (*User, error) {
	if plusfriendKey != "" {
		u, err := scanUser(s.db.QueryRowContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE plusfriend_user_key = $1", plusfriendKey))
		if err != nil || u != nil {
			return u, err
		}
	}
	if appUserID != "" {
		u, err := scanUser(s.db.QueryRowContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE app_user_id = $1", appUserID))
		if err != nil || u != nil {
			return u, err
		}
	}
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE kakao_id = $1", kakaoID))
}

// nullable normalizes an empty secondary key to NULL so that empty strings
// can never collide with a future real key under the unique constraint.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// userResolver is the seam between the resolution ordering and the SQL that
// backs it.
type userResolver interface {
	find(ctx context.Context, kakaoID, plusfriendKey, appUserID string) (*User, error)
	insert(ctx context.Context, kakaoID, plusfriendKey, appUserID string) (*User, error)
	reconcile(ctx context.Context, user *User, kakaoID, plusfriendKey, appUserID string) (*User, error)
}

// Resolve maps the inbound platform identifiers to the local user record,
// creating or reconciling it as needed. Resolution is idempotent: the same
// identifier triple always lands on the same record, and stored identifiers
// are healed to match the inbound payload when they drift.
func (s *UserStore) Resolve(ctx context.Context, kakaoID, plusfriendKey, appUserID string) (*User, error) {
	return resolveUser(ctx, s, s.log, kakaoID, plusfriendKey, appUserID)
}

func resolveUser(ctx context.Context, r userResolver, log *zap.Logger, kakaoID, plusfriendKey, appUserID string) (*User, error) {
	if kakaoID == "" {
		return nil, fmt.Errorf("kakao id is required")
	}

	user, err := r.find(ctx, kakaoID, plusfriendKey, appUserID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = r.insert(ctx, kakaoID, plusfriendKey, appUserID)
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, err
			}
			// A concurrent request won the insert race; pick up its record.
			log.Debug("duplicate user insert detected, re-fetching",
				zap.String("kakao_id", kakaoID))
			user, err = r.find(ctx, kakaoID, plusfriendKey, appUserID)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, fmt.Errorf("user vanished after duplicate insert for kakao_id %s", kakaoID)
			}
		}
	}

	return r.reconcile(ctx, user, kakaoID, plusfriendKey, appUserID)
}

func (s *UserStore) insert(ctx context.Context, kakaoID, plusfriendKey, appUserID string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (kakao_id, plusfriend_user_key, app_user_id)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		kakaoID, nullable(plusfriendKey), nullable(appUserID))
	var u User
	if err := row.Scan(&u.ID, &u.KakaoID, &u.PlusfriendUserKey, &u.AppUserID, &u.KakaoAdmin); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	s.log.Info("created user record", zap.Int64("user_id", u.ID))
	return &u, nil
}

// reconcile overwrites stored identifiers with the inbound ones when they
// differ. Inbound empty secondary keys never erase a stored value.
func (s *UserStore) reconcile(ctx context.Context, user *User, kakaoID, plusfriendKey, appUserID string) (*User, error) {
	changed := user.KakaoID != kakaoID
	user.KakaoID = kakaoID
	if plusfriendKey != "" && (!user.PlusfriendUserKey.Valid || user.PlusfriendUserKey.String != plusfriendKey) {
		user.PlusfriendUserKey = nullable(plusfriendKey)
		changed = true
	}
	if appUserID != "" && (!user.AppUserID.Valid || user.AppUserID.String != appUserID) {
		user.AppUserID = nullable(appUserID)
		changed = true
	}
	if !changed {
		return user, nil
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET kakao_id = $1, plusfriend_user_key = $2, app_user_id = $3
		WHERE id = $4`,
		user.KakaoID, user.PlusfriendUserKey, user.AppUserID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile user identifiers: %w", err)
	}
	s.log.Debug("reconciled user identifiers", zap.Int64("user_id", user.ID))
	return user, nil
}

// EnsureServiceAccount creates the admin service account used for outbound
// calls made on the service's own behalf. Safe to call on every startup.
func (s *UserStore) EnsureServiceAccount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, kakao_id, plusfriend_user_key, app_user_id, kakao_admin)
		VALUES ($1, '__SERVICE__', '__SERVICE__', '__SERVICE__', TRUE)
		ON CONFLICT (id) DO NOTHING`, id)
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to ensure service account: %w", err)
	}
	return nil
}
