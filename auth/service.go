// Package auth composes the admin store, password hasher and token issuer
// into the register / login / change-password flows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/models"
	"github.com/princinho/catalogadmin/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = errors.New("username is required")
)

type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type Issuer interface {
	Issue(adminID, username string) (string, time.Time, error)
}

type Service struct {
	admins database.AdminStore
	hasher Hasher
	tokens Issuer
	log    *zap.Logger

	decoyMu sync.Mutex
	decoy   string
}

func NewService(admins database.AdminStore, hasher Hasher, tokens Issuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{admins: admins, hasher: hasher, tokens: tokens, log: log}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates the one administrator. Every later call returns
// database.ErrRegistrationClosed.
func (s *Service) Register(ctx context.Context, username, password string) (*models.Admin, error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	s.log.Info("admin registered", zap.String("username", admin.Username))
	return admin, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.FindByUsername(ctx, utils.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// spend the same hashing time as a real mismatch
			s.hasher.Verify(s.decoyHash(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID.Hex(), admin.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// decoyHash returns a hash to compare against when the username is unknown.
// A failed hash is not cached; the next call tries again.
func (s *Service) decoyHash() string {
	s.decoyMu.Lock()
	defer s.decoyMu.Unlock()
	if s.decoy == "" {
		hash, err := s.hasher.Hash("decoy-password-for-unknown-users")
		if err != nil {
			s.log.Error("decoy hash failed, unknown-user login skips bcrypt", zap.Error(err))
			return ""
		}
		s.decoy = hash
	}
	return s.decoy
}

// ChangePassword replaces the admin's hash after checking the current
// password. Tokens already issued stay valid until they expire.
func (s *Service) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	id, err := bson.ObjectIDFromHex(adminID)
	if err != nil {
		return ErrInvalidCredentials
	}
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !s.hasher.Verify(admin.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.admins.UpdatePassword(ctx, id, hash)
}

// SeedAdmin registers the admin from startup configuration. An existing
// admin is left alone.
func (s *Service) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.Register(ctx, username, password)
	if errors.Is(err, database.ErrRegistrationClosed) {
		s.log.Info("admin already exists, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
