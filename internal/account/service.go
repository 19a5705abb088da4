package account

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/internal/account/entity"
	"github.com/mslima/blog-core-go/internal/auth"
	"github.com/mslima/blog-core-go/internal/mail"
	"github.com/mslima/blog-core-go/pkg/utilities"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrNotFound       = errors.New("account not found")
	ErrInvalidImage   = errors.New("invalid image payload")
)

// Store is the persistence surface the service needs; satisfied by
// repo.AccountRepo and by fakes in tests.
type Store interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateImage(ctx context.Context, id int64, image string) (bool, error)
}

// ImageStore persists uploaded profile images under a generated name.
type ImageStore interface {
	Save(name string, data []byte) error
}

const generatedPasswordLength = 25

// Service orchestrates registration, login and profile image upload.
type Service struct {
	store  Store
	tokens *auth.TokenService
	mailer mail.Mailer
	images ImageStore
	logger *zap.SugaredLogger
}

func NewService(store Store, tokens *auth.TokenService, mailer mail.Mailer, images ImageStore, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer, images: images, logger: logger}
}

// RegistrationResult is returned to the caller of POST /v1/accounts: the
// registered email plus the generated password, which is also mailed to the
// owner out-of-band.
type RegistrationResult struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// Register provisions an account with a generated credential. The slug is a
// pure function of the email.
func (s *Service) Register(ctx context.Context, name, email string) (*RegistrationResult, error) {
	password := auth.GeneratePassword(generatedPasswordLength, true, true)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		Slug:         entity.SlugFromEmail(email),
		PasswordHash: &hash,
	}
	if _, err := s.store.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	// best-effort welcome mail; a transport failure must not fail registration
	body := fmt.Sprintf("Sua senha é %s", password)
	if err := s.mailer.Send(email, "Bem vindo ao blog!", body); err != nil {
		s.logger.Warnw("welcome mail failed", "email", email, "err", err)
	}

	return &RegistrationResult{User: u.Email, Password: password}, nil
}

// Login authenticates by email/password and returns a signed bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if u.PasswordHash == nil || !auth.VerifyPassword(*u.PasswordHash, password) {
		return "", ErrBadCredentials
	}
	return s.tokens.Issue(u)
}

var dataURIPrefix = regexp.MustCompile(`^data:image/[a-zA-Z]+;base64,`)

// UploadImage decodes a base64 payload (with or without a data-URI prefix),
// stores it under a generated name and records the reference on the account
// identified by the token's name claim.
func (s *Service) UploadImage(ctx context.Context, email, payload string) error {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	data, err := base64.StdEncoding.DecodeString(dataURIPrefix.ReplaceAllString(payload, ""))
	if err != nil {
		return ErrInvalidImage
	}

	fileName := utilities.NewKSUID() + ".png"
	if err := s.images.Save(fileName, data); err != nil {
		return err
	}
	ok, err := s.store.UpdateImage(ctx, u.ID, fileName)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
