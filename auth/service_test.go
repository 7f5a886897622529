package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/models"
	"github.com/princinho/catalogadmin/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *database.Stores, *utils.TokenIssuer) {
	t.Helper()
	stores := database.NewMemoryStores()
	issuer, err := utils.NewTokenIssuer("auth-service-test-secret")
	require.NoError(t, err)
	return NewService(stores.Admins, utils.NewPasswordHasher(bcrypt.MinCost), issuer, nil), stores, issuer
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, stores, issuer := newTestService(t)

	admin, err := svc.Register(ctx, "  owner ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "owner", admin.Username)
	assert.NotEqual(t, "correct horse", admin.PasswordHash)

	stored, err := stores.Admins.FindByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))

	res, err := svc.Login(ctx, "owner", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(utils.TokenTTL), res.ExpiresAt, 5*time.Second)

	claims, err := issuer.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), claims.Subject)
	assert.Equal(t, "owner", claims.Username)
}

func TestRegisterClosedAfterFirstAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(ctx, "owner", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "intruder", "pw-two")
	assert.ErrorIs(t, err, database.ErrRegistrationClosed)

	// the original credentials still work and the intruder's never do
	_, err = svc.Login(ctx, "owner", "pw-one")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "intruder", "pw-two")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	_, err := svc.Register(ctx, "owner", "pw")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody", "pw")
	_, wrongErr := svc.Login(ctx, "owner", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginWithNoAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "owner", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

type failingAdmins struct{ database.AdminStore }

func (failingAdmins) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return nil, database.ErrUnavailable
}

func TestLoginPropagatesStoreErrors(t *testing.T) {
	issuer, err := utils.NewTokenIssuer("secret")
	require.NoError(t, err)
	svc := NewService(failingAdmins{}, utils.NewPasswordHasher(bcrypt.MinCost), issuer, nil)

	_, err = svc.Login(context.Background(), "owner", "pw")
	assert.ErrorIs(t, err, database.ErrUnavailable)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	admin, err := svc.Register(ctx, "owner", "old-password")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.ID.Hex(), "not-it", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, "garbage", "old-password", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, bson.NewObjectID().Hex(), "old-password", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID.Hex(), "old-password", "new-password"))

	_, err = svc.Login(ctx, "owner", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "owner", "new-password")
	assert.NoError(t, err)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	svc, stores, _ := newTestService(t)

	require.NoError(t, svc.SeedAdmin(ctx, "", ""))
	_, err := stores.Admins.FindByUsername(ctx, "seeded")
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, svc.SeedAdmin(ctx, "seeded", "seed-pw"))
	require.NoError(t, svc.SeedAdmin(ctx, "other", "other-pw"))

	_, err = svc.Login(ctx, "seeded", "seed-pw")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "other", "other-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsBlankUsername(t *testing.T) {
	ctx := context.Background()
	svc, stores, _ := newTestService(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Register(ctx, name, "pw")
		assert.ErrorIs(t, err, ErrEmptyUsername)
	}
	_, err := stores.Admins.FindByUsername(ctx, "")
	assert.ErrorIs(t, err, database.ErrNotFound)

	// registration is still open
	_, err = svc.Register(ctx, "owner", "pw")
	assert.NoError(t, err)
}

// flakyHasher fails its first n Hash calls and records what Verify saw.
type flakyHasher struct {
	*utils.PasswordHasher
	failures int
	verified []string
}

func (h *flakyHasher) Hash(password string) (string, error) {
	if h.failures > 0 {
		h.failures--
		return "", errors.New("entropy exhausted")
	}
	return h.PasswordHasher.Hash(password)
}

func (h *flakyHasher) Verify(hash, password string) bool {
	h.verified = append(h.verified, hash)
	return h.PasswordHasher.Verify(hash, password)
}

func TestDecoyHashRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.ErrorLevel)
	issuer, err := utils.NewTokenIssuer("secret")
	require.NoError(t, err)
	hasher := &flakyHasher{PasswordHasher: utils.NewPasswordHasher(bcrypt.MinCost), failures: 1}
	svc := NewService(database.NewMemoryStores().Admins, hasher, issuer, zap.New(core))

	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, logs.FilterMessageSnippet("decoy hash failed").Len())

	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hasher.verified, 2)
	assert.Empty(t, hasher.verified[0])
	assert.NotEmpty(t, hasher.verified[1])
	_, err = bcrypt.Cost([]byte(hasher.verified[1]))
	assert.NoError(t, err)
}
