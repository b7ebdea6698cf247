// Password auth and the OTP-gated credential-reset flow:
// login/logout/refresh, request-otp → verify-otp → reset-password.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/security"
	"github.com/marketbytes-devops/alameinmovers/internal/users"
	"github.com/marketbytes-devops/alameinmovers/internal/util"
)

var (
	ErrUserNotFound     = errors.New("user with this email does not exist")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrAccountDisabled  = errors.New("account is disabled")
	ErrOTPInvalid       = errors.New("invalid OTP")
	ErrOTPExpired       = errors.New("OTP has expired")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTooManyRequests  = errors.New("too many OTP requests for this email")
	ErrMailDelivery     = errors.New("failed to send OTP email")
	ErrTokenRevoked     = errors.New("token revoked")
)

const otpCodeLength = 6

// UserStore is the persistence surface the auth flow needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	SetOTP(ctx context.Context, email, code string, issuedAt time.Time) error
	ResetPassword(ctx context.Context, email, passwordHash string) error
}

// OTPMailer dispatches the reset code to the user. Delivery is a collaborator
// concern: the OTP state change has already been persisted when it runs.
type OTPMailer interface {
	SendPasswordResetOTP(to, code string, window time.Duration) mailer.Result
}

type Service struct {
	store UserStore
	mail  OTPMailer
	jwt   *security.JWTManager
	rdb   *redis.Client // OTP request throttle + refresh-token denylist; optional

	otpWindow        time.Duration
	otpPerEmail      int
	otpRequestWindow time.Duration

	now func() time.Time
}

func NewService(store UserStore, mail OTPMailer, jwt *security.JWTManager, rdb *redis.Client, otpWindow time.Duration, otpPerEmail int, otpRequestWindow time.Duration) *Service {
	if otpWindow <= 0 {
		otpWindow = 10 * time.Minute
	}
	return &Service{
		store:            store,
		mail:             mail,
		jwt:              jwt,
		rdb:              rdb,
		otpWindow:        otpWindow,
		otpPerEmail:      otpPerEmail,
		otpRequestWindow: otpRequestWindow,
		now:              time.Now,
	}
}

// Login checks credentials and issues an access+refresh token pair with the role claim.
func (s *Service) Login(ctx context.Context, email, password string) (security.Tokens, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return security.Tokens{}, ErrUserNotFound
		}
		return security.Tokens{}, err
	}
	if !u.IsActive {
		return security.Tokens{}, ErrAccountDisabled
	}
	if !util.ComparePassword(u.PasswordHash, password) {
		return security.Tokens{}, ErrWrongPassword
	}
	tokens, _, err := s.jwt.Issue(string(u.Role), u.ID)
	return tokens, err
}

// Logout revokes the presented refresh token by denylisting its JTI until expiry.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return err
	}
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, denylistKey(claims.ID), "1", ttl).Err()
}

// Refresh exchanges a valid, unrevoked refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (security.Tokens, error) {
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return security.Tokens{}, err
	}
	if s.rdb != nil {
		n, err := s.rdb.Exists(ctx, denylistKey(claims.ID)).Result()
		if err == nil && n > 0 {
			return security.Tokens{}, ErrTokenRevoked
		}
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return security.Tokens{}, err
	}
	tokens, _, err := s.jwt.Issue(claims.Role, uid)
	return tokens, err
}

// RequestOTP issues a fresh 6-digit reset code for the user, overwriting any
// previous unconsumed code, then emails it. The state change persists even when
// delivery fails; a delivery failure is still reported to the caller.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.throttle(ctx, u.Email); err != nil {
		return err
	}

	code, err := util.GenerateNumericCode(otpCodeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.store.SetOTP(ctx, u.Email, code, s.now()); err != nil {
		return err
	}

	res := s.mail.SendPasswordResetOTP(u.Email, code, s.otpWindow)
	if !res.Sent {
		log.Printf("[auth] OTP email to %s failed: %s", u.Email, res.Reason)
		return ErrMailDelivery
	}
	return nil
}

// VerifyOTP checks that the presented code matches the pending one and is within
// the validity window. It does not consume the code: verification only gates the
// next step, consumption happens in ResetPassword.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.checkOTP(u.OTP, code)
}

// ResetPassword finalizes the credential change: confirmation and policy checks,
// independent re-validation of the code, then hash + clear in one persisted step.
// Nothing mutates on any validation failure.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.checkOTP(u.OTP, code); err != nil {
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.ResetPassword(ctx, u.Email, hash)
}

// checkOTP applies the match and expiry rules against the stored state.
func (s *Service) checkOTP(state *users.OTPState, code string) error {
	if state == nil || code == "" {
		return ErrOTPInvalid
	}
	if subtle.ConstantTimeCompare([]byte(state.Code), []byte(code)) != 1 {
		return ErrOTPInvalid
	}
	if s.now().Sub(state.IssuedAt) > s.otpWindow {
		return ErrOTPExpired
	}
	return nil
}

// throttle caps OTP issuances per email over the request window (Redis fixed window).
func (s *Service) throttle(ctx context.Context, email string) error {
	if s.rdb == nil || s.otpPerEmail <= 0 {
		return nil
	}
	return throttleIncr(ctx, s.rdb, "otp_req:"+email, s.otpPerEmail, s.otpRequestWindow)
}

// throttleKeys is the slice of the Redis client the OTP throttle needs.
type throttleKeys interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func throttleIncr(ctx context.Context, rdb throttleKeys, key string, limit int, window time.Duration) error {
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis down must not block password resets.
		return nil
	}
	if n == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			// Without a TTL the counter would lock the email out forever.
			rdb.Del(ctx, key)
			return nil
		}
	}
	if n > int64(limit) {
		return ErrTooManyRequests
	}
	return nil
}

func denylistKey(jti string) string { return "jwt_denylist:" + jti }
