package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentease_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// UpdatePassword replaces the stored hash of the user with the email.
	UpdatePassword(ctx context.Context, email, hash string) error
}

// TokenGenerator issues bearer tokens.
type TokenGenerator interface {
	GenerateToken(userID, email string) (string, error)
}

// OTPStore keeps one live code per email.
type OTPStore interface {
	// Issue creates a new code for email, replacing any previous one.
	Issue(ctx context.Context, email string) (string, error)

	// Verify compares code with the live one and consumes it on a match, in one step.
	// It returns ErrOTPNotRequested when none exists. A mismatch leaves the code live.
	Verify(ctx context.Context, email, code string) (bool, error)

	// Invalidate drops the live code, if any.
	Invalidate(ctx context.Context, email string) error
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// authUsecase implements account and OTP flows.
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	otps   OTPStore
	mailer Mailer
	otpTTL time.Duration
}

// NewAuthUsecase creates an authUsecase. otpTTL is only used in mail copy.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, otps OTPStore, mailer Mailer, otpTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		otps:   otps,
		mailer: mailer,
		otpTTL: otpTTL,
	}
}

// normalizeEmail trims and lower-cases an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Signup registers a user directly.
func (u *authUsecase) Signup(ctx context.Context, name, email, password, confirm string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" || confirm == "" {
		return ErrAllFieldsRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return u.createUser(ctx, name, email, password)
}

// Login checks credentials and returns a token with the user.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword mails a reset code to a registered address.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := u.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrEmailNotFound
		}
		return err
	}
	return u.sendCode(ctx, email, "Password Reset OTP", "Your OTP for password reset is %s. It is valid for %s.")
}

// ResetPassword replaces the password when code matches the live reset code.
// A wrong or missing code leaves the stored password untouched.
func (u *authUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" || newPassword == "" {
		return ErrAllFieldsRequired
	}
	ok, err := u.otps.Verify(ctx, email, code)
	if err != nil && !errors.Is(err, ErrOTPNotRequested) {
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		return ErrInvalidOrExpiredOTP
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOrExpiredOTP
		}
		return err
	}
	return nil
}

// SendSignupOTP mails a verification code to email.
func (u *authUsecase) SendSignupOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	return u.sendCode(ctx, email, "Email Verification OTP", "Your RentEase signup OTP is %s. It is valid for %s.")
}

// VerifySignupOTP creates the account once the emailed code matches.
func (u *authUsecase) VerifySignupOTP(ctx context.Context, name, email, password, code string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	ok, err := u.otps.Verify(ctx, email, code)
	if err != nil {
		if errors.Is(err, ErrOTPNotRequested) {
			return ErrOTPNotRequested
		}
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		return ErrInvalidOTP
	}

	if name == "" || password == "" {
		return ErrAllFieldsRequired
	}
	return u.createUser(ctx, name, email, password)
}

func (u *authUsecase) createUser(ctx context.Context, name, email, password string) error {
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return u.users.Create(ctx, &entity.User{Name: name, Email: email, Password: hash})
}

// sendCode issues a code and mails it using format(code, validity).
func (u *authUsecase) sendCode(ctx context.Context, email, subject, format string) error {
	code, err := u.otps.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to issue otp: %w", err)
	}
	validity := formatValidity(u.otpTTL)
	text := fmt.Sprintf(format, code, validity)
	html := "<p>" + fmt.Sprintf(format, "<b>"+code+"</b>", validity) + "</p>"
	if err := u.mailer.Send(ctx, email, subject, text, html); err != nil {
		u.invalidate(ctx, email)
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	return nil
}

// invalidate drops a code that was never delivered. Failures are logged only.
func (u *authUsecase) invalidate(ctx context.Context, email string) {
	if err := u.otps.Invalidate(ctx, email); err != nil {
		slog.Warn("otp invalidate failed", "error", err, "email", email)
	}
}

// formatValidity renders a TTL for mail copy, e.g. "5 minutes".
func formatValidity(ttl time.Duration) string {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	switch {
	case minutes <= 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
