package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service runs the emailed-code login and the credential update flows.
type Service struct {
	db     database.Database
	store  *Store
	tokens *TokenIssuer
	mailer services.Mailer
	logger zerolog.Logger
}

func NewService(db database.Database, store *Store, tokens *TokenIssuer, mailer services.Mailer) *Service {
	return &Service{
		db:     db,
		store:  store,
		tokens: tokens,
		mailer: mailer,
		logger: log.With().Str("service", "auth").Logger(),
	}
}

// Store exposes the verification store for scheduling sweeps.
func (s *Service) Store() *Store {
	return s.store
}

// Tokens exposes the issuer used to validate bearer tokens.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Session is the outcome of a completed login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Email     string
	State     State
}

// CredentialUpdate carries a verified request to replace the admin credentials.
type CredentialUpdate struct {
	Email            string
	VerificationCode string
	NewEmail         string
	NewEmailPassword string
	NewPassword      string
}

// CredentialSummary is the non-secret view of the admin credentials.
type CredentialSummary struct {
	Email            string
	EmailPasswordSet bool
	UpdatedAt        time.Time
}

// RequestLoginCode moves email from Idle to CodeSent. The password is only
// checked once the code comes back.
func (s *Service) RequestLoginCode(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if password == "" {
		return errs.NewMissingRequiredFieldError("password")
	}

	creds, err := s.db.AdminCredentialsRepo().FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return errs.NewDatabaseError("find", "admin credentials", err)
	}

	return s.sendCode(ctx, creds.Email, PurposeLogin, password)
}

// VerifyLogin moves email from CodeSent to Authenticated and issues a session token.
func (s *Service) VerifyLogin(ctx context.Context, email, code string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errs.NewMissingRequiredFieldError("email")
	}
	if strings.TrimSpace(code) == "" {
		return nil, errs.NewMissingRequiredFieldError("code")
	}

	challenge, err := s.store.Redeem(email, PurposeLogin, code)
	if err != nil {
		s.recordVerification(PurposeLogin, err)
		return nil, err
	}
	signedIn := false
	defer func() {
		if !signedIn {
			s.store.Restore(email, challenge)
		}
	}()

	creds, err := s.db.AdminCredentialsRepo().FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.recordVerification(PurposeLogin, errs.ErrInvalidCredentials)
		return nil, errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin credentials", err)
	}
	if !CheckPassword(creds.PasswordHash, challenge.Pending) {
		s.recordVerification(PurposeLogin, errs.ErrInvalidCredentials)
		return nil, errs.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.Issue(creds.Email, creds.ID.String())
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("Failed to issue session token", err)
	}
	signedIn = true
	s.recordVerification(PurposeLogin, nil)
	s.logger.Info().Str("email", creds.Email).Msg("Admin signed in")

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     creds.Email,
		State:     Authenticated,
	}, nil
}

// RequestUpdateCode mails a credential update code to the configured admin
// address and returns that address.
func (s *Service) RequestUpdateCode(ctx context.Context) (string, error) {
	creds, err := s.db.AdminCredentialsRepo().First(ctx)
	if err != nil {
		return "", errs.NewDatabaseError("find", "admin credentials", err)
	}
	if err := s.sendCode(ctx, creds.Email, PurposeCredentialUpdate, ""); err != nil {
		return "", err
	}
	return creds.Email, nil
}

// UpdateCredentials replaces the admin email, mailbox app password and login
// password after checking the code. The credentials row and the public contact
// email change together or not at all.
func (s *Service) UpdateCredentials(ctx context.Context, req CredentialUpdate) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		current, err := s.db.AdminCredentialsRepo().First(ctx)
		if err != nil {
			return errs.NewDatabaseError("find", "admin credentials", err)
		}
		email = current.Email
	}

	challenge, err := s.store.Redeem(email, PurposeCredentialUpdate, req.VerificationCode)
	if err != nil {
		s.recordVerification(PurposeCredentialUpdate, err)
		return err
	}
	applied := false
	defer func() {
		if !applied {
			s.store.Restore(email, challenge)
		}
	}()

	newEmail := strings.TrimSpace(req.NewEmail)
	switch {
	case newEmail == "":
		return errs.NewMissingRequiredFieldError("newEmail")
	case req.NewEmailPassword == "":
		return errs.NewMissingRequiredFieldError("newEmailPassword")
	case req.NewPassword == "":
		return errs.NewMissingRequiredFieldError("newPassword")
	}

	creds, err := s.db.AdminCredentialsRepo().FindByEmail(ctx, email)
	if err != nil {
		return errs.NewDatabaseError("find", "admin credentials", err)
	}

	owner, err := s.db.AdminCredentialsRepo().FindByEmail(ctx, newEmail)
	switch {
	case err == nil && owner.ID != creds.ID:
		return errs.NewEmailInUseError()
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewDatabaseError("find", "admin credentials", err)
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return errs.NewInvalidFieldError("newPassword", err.Error())
	}

	updated := models.AdminCredentials{
		ID:            creds.ID,
		Email:         newEmail,
		EmailPassword: req.NewEmailPassword,
		PasswordHash:  hash,
	}
	err = s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.AdminCredentialsRepo().Update(ctx, &updated); err != nil {
			return errs.NewDatabaseError("update", "admin credentials", err)
		}
		if err := tx.AdminDetailsRepo().UpdateEmail(ctx, newEmail); err != nil {
			return errs.NewDatabaseError("update", "admin details", err)
		}
		return nil
	})
	if errs.IsUniqueConstraintViolationError(err) {
		return errs.NewEmailInUseError()
	}
	if err != nil {
		return errs.NewTransactionFailedError("update admin credentials", err)
	}

	applied = true
	s.recordVerification(PurposeCredentialUpdate, nil)
	s.logger.Info().Str("oldEmail", creds.Email).Str("newEmail", newEmail).Msg("Admin credentials updated")
	return nil
}

// AdminEmail returns the configured admin login email.
func (s *Service) AdminEmail(ctx context.Context) (string, error) {
	creds, err := s.db.AdminCredentialsRepo().First(ctx)
	if err != nil {
		return "", errs.NewDatabaseError("find", "admin credentials", err)
	}
	return creds.Email, nil
}

// Credentials returns the stored credentials without any secret.
func (s *Service) Credentials(ctx context.Context) (*CredentialSummary, error) {
	creds, err := s.db.AdminCredentialsRepo().First(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin credentials", err)
	}
	return &CredentialSummary{
		Email:            creds.Email,
		EmailPasswordSet: creds.EmailPassword != "",
		UpdatedAt:        creds.UpdatedAt,
	}, nil
}

func (s *Service) sendCode(ctx context.Context, email string, purpose Purpose, pending string) error {
	challenge, previous, hadPrevious, err := s.store.replace(email, purpose, pending)
	if err != nil {
		return errs.NewInternalErrorWithCause("Failed to generate verification code", err)
	}

	msg := services.VerificationMessage(email, challenge.Code, string(purpose))
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.store.withdraw(email, challenge, previous, hadPrevious)
		s.logger.Error().Err(err).Str("email", email).Str("purpose", string(purpose)).Msg("Failed to send verification code")
		return errs.NewDeliveryError("email", err)
	}

	codesIssued.WithLabelValues(string(purpose)).Inc()
	s.logger.Info().Str("email", email).Str("purpose", string(purpose)).Msg("Sent verification code")
	return nil
}

func (s *Service) recordVerification(purpose Purpose, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errs.IsNoPendingCodeError(err):
		outcome = "no_pending_code"
	case errs.IsCodeExpiredError(err):
		outcome = "expired"
	case errs.IsInvalidCodeError(err):
		outcome = "invalid_code"
	case errs.IsInvalidCredentialsError(err):
		outcome = "invalid_credentials"
	default:
		outcome = "error"
	}
	verifications.WithLabelValues(string(purpose), outcome).Inc()
}
