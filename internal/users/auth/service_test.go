// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/sec"
	"github.com/taibuivan/tirtha/internal/users/auth"
)

// # Test Fakes

type fakeUserRepo struct {
	users        map[string]*auth.User
	beforeCreate func()
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*auth.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_account_email"}
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsVerified = true
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*auth.Session // keyed by token hash
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*auth.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeOthers(_ context.Context, userID, keepTokenHash string) error {
	for hash, session := range r.sessions {
		if session.UserID == userID && hash != keepTokenHash {
			delete(r.sessions, hash)
		}
	}
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]string{}}
}

func (r *fakeTokenRepo) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *fakeTokenRepo) Get(_ context.Context, token string) (string, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return "", apperr.NotFound("Token")
	}
	return userID, nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type fakeTokenProvider struct {
	issued int
}

func (p *fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	p.issued++
	return fmt.Sprintf("jwt.%s.%s.%s.%d", userID, username, role, p.issued), nil
}

type authFixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	resets   *fakeTokenRepo
	verifies *fakeTokenRepo
	provider *fakeTokenProvider
	service  *auth.Service
}

func newAuthFixture() *authFixture {
	fixture := &authFixture{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		resets:   newFakeTokenRepo(),
		verifies: newFakeTokenRepo(),
		provider: &fakeTokenProvider{},
	}
	fixture.service = auth.NewService(
		fixture.users, fixture.sessions, fixture.resets, fixture.verifies, fixture.provider,
	)
	return fixture
}

func (fixture *authFixture) register(t *testing.T, username, email, password string) *auth.User {
	t.Helper()
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    password,
		DisplayName: username,
	})
	require.NoError(t, err)
	return user
}

// # Tests

/*
TestRegister verifies enrollment, hashing, and duplicate identity rejection.
*/
func TestRegister(t *testing.T) {
	t.Run("creates_member_with_hashed_password", func(t *testing.T) {
		fixture := newAuthFixture()

		user := fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		assert.Equal(t, sec.RoleMember, user.Role)
		assert.False(t, user.IsVerified)
		assert.NotEqual(t, "kurukshetra", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("kurukshetra", user.PasswordHash))
	})

	t.Run("stores_verification_token", func(t *testing.T) {
		fixture := newAuthFixture()

		user := fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		require.Len(t, fixture.verifies.tokens, 1)
		for _, userID := range fixture.verifies.tokens {
			assert.Equal(t, user.ID, userID)
		}
	})

	t.Run("rejects_duplicate_email", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
			Username: "nakula",
			Email:    "arjuna@example.com",
			Password: "password123",
		})

		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("maps_create_race_to_conflict", func(t *testing.T) {
		fixture := newAuthFixture()

		// A concurrent registration lands between the pre-checks and the
		// insert; the raw unique violation must still surface as Conflict.
		fixture.users.beforeCreate = func() {
			fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")
		}

		_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
			Username: "arjuna",
			Email:    "arjuna@example.com",
			Password: "password123",
		})

		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestLogin verifies credential checks and session issuance.
*/
func TestLogin(t *testing.T) {
	t.Run("issues_token_pair_by_email_or_username", func(t *testing.T) {
		fixture := newAuthFixture()
		user := fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		for _, login := range []string{"arjuna@example.com", "arjuna"} {
			session, err := fixture.service.Login(context.Background(), auth.LoginInput{
				Login:    login,
				Password: "kurukshetra",
			})
			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.Equal(t, user.ID, session.User.ID)
		}

		// Both logins tracked as independent sessions.
		assert.Len(t, fixture.sessions.sessions, 2)
	})

	t.Run("rejects_wrong_password_generically", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "arjuna",
			Password: "hastinapura",
		})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("rejects_unknown_user_with_same_message", func(t *testing.T) {
		fixture := newAuthFixture()

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "ghost",
			Password: "whatever",
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

/*
TestRefreshSession verifies refresh token rotation semantics.
*/
func TestRefreshSession(t *testing.T) {
	t.Run("rotates_and_revokes_old_token", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		first, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login: "arjuna", Password: "kurukshetra",
		})
		require.NoError(t, err)

		second, err := fixture.service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The rotated-out token is burned: replaying it must fail.
		_, err = fixture.service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("rejects_unknown_token", func(t *testing.T) {
		fixture := newAuthFixture()

		_, err := fixture.service.RefreshSession(context.Background(), "never-issued", "ua", "ip")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

/*
TestLogout verifies revocation and idempotency.
*/
func TestLogout(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login: "arjuna", Password: "kurukshetra",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, fixture.sessions.sessions)

	// Logging out twice is not an error.
	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
}

/*
TestPasswordReset verifies the forgot-password flow end to end.
*/
func TestPasswordReset(t *testing.T) {
	t.Run("resets_password_and_revokes_all_sessions", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login: "arjuna", Password: "kurukshetra",
		})
		require.NoError(t, err)

		token, err := fixture.service.RequestPasswordReset(context.Background(), "arjuna@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "newpassword1"))

		// Old sessions are revoked and the token is single-use.
		assert.Empty(t, fixture.sessions.sessions)
		assert.Empty(t, fixture.resets.tokens)

		_, err = fixture.service.Login(context.Background(), auth.LoginInput{
			Login: "arjuna", Password: "newpassword1",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown_email_is_silent", func(t *testing.T) {
		fixture := newAuthFixture()

		token, err := fixture.service.RequestPasswordReset(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("rejects_invalid_token", func(t *testing.T) {
		fixture := newAuthFixture()

		err := fixture.service.ResetPassword(context.Background(), "bogus", "newpassword1")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestChangePassword verifies in-session credential rotation.
*/
func TestChangePassword(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

	current, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login: "arjuna", Password: "kurukshetra",
	})
	require.NoError(t, err)

	other, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login: "arjuna", Password: "kurukshetra",
	})
	require.NoError(t, err)

	t.Run("rejects_wrong_current_password", func(t *testing.T) {
		err := fixture.service.ChangePassword(
			context.Background(), user.ID, "hastinapura", "newpassword1", current.RefreshToken,
		)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("keeps_current_session_and_revokes_others", func(t *testing.T) {
		err := fixture.service.ChangePassword(
			context.Background(), user.ID, "kurukshetra", "newpassword1", current.RefreshToken,
		)
		require.NoError(t, err)

		_, err = fixture.service.RefreshSession(context.Background(), other.RefreshToken, "ua", "ip")
		assert.Error(t, err)

		_, err = fixture.service.RefreshSession(context.Background(), current.RefreshToken, "ua", "ip")
		assert.NoError(t, err)
	})
}

/*
TestVerifyEmail verifies the email confirmation flow.
*/
func TestVerifyEmail(t *testing.T) {
	t.Run("marks_account_verified", func(t *testing.T) {
		fixture := newAuthFixture()
		user := fixture.register(t, "arjuna", "arjuna@example.com", "kurukshetra")

		var token string
		for issued := range fixture.verifies.tokens {
			token = issued
		}
		require.NotEmpty(t, token)

		require.NoError(t, fixture.service.VerifyEmail(context.Background(), token))

		assert.True(t, fixture.users.users[user.ID].IsVerified)
		assert.Empty(t, fixture.verifies.tokens)
	})

	t.Run("rejects_unknown_token", func(t *testing.T) {
		fixture := newAuthFixture()

		err := fixture.service.VerifyEmail(context.Background(), "bogus")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
