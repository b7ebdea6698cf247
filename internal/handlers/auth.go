// Auth endpoints: login/logout/refresh and the three-step password reset
// (request-otp → verify-otp → reset-password).
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/auth"
	"github.com/marketbytes-devops/alameinmovers/internal/response"
	"github.com/marketbytes-devops/alameinmovers/internal/util"
)

// --- POST /auth/login ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "email and password are required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		tokens, err := svc.Login(ctx, req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrWrongPassword):
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		case errors.Is(err, auth.ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, err.Error())
			return
		case err != nil:
			log.Printf("[auth] login: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, tokens)
	}
}

// --- POST /auth/logout ---

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func Logout(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "refresh token is required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		if err := svc.Logout(ctx, req.Refresh); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid refresh token")
			return
		}
		response.Success(c, http.StatusOK, "successfully logged out", nil)
	}
}

// --- POST /auth/refresh ---

func Refresh(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "refresh token is required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		tokens, err := svc.Refresh(ctx, req.Refresh)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, tokens)
	}
}

// --- POST /auth/forgot-password ---

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func RequestOTP(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "a valid email is required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err := svc.RequestOTP(ctx, req.Email)
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, auth.ErrTooManyRequests):
			response.Error(c, http.StatusTooManyRequests, err.Error())
			return
		case errors.Is(err, auth.ErrMailDelivery):
			response.Error(c, http.StatusInternalServerError, err.Error())
			return
		case err != nil:
			log.Printf("[auth] request OTP: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, "OTP sent to your email", nil)
	}
}

// --- POST /auth/verify-otp ---

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

func VerifyOTP(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "email and otp are required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err := svc.VerifyOTP(ctx, req.Email, req.OTP)
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, auth.ErrOTPInvalid), errors.Is(err, auth.ErrOTPExpired):
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Printf("[auth] verify OTP: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, "OTP verified successfully", nil)
	}
}

// --- POST /auth/reset-password ---

type ResetPasswordRequest struct {
	Email              string `json:"email" binding:"required,email"`
	OTP                string `json:"otp" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
}

func ResetPassword(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "email, otp, new_password and confirm_new_password are required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err := svc.ResetPassword(ctx, req.Email, req.OTP, req.NewPassword, req.ConfirmNewPassword)
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, auth.ErrOTPInvalid), errors.Is(err, auth.ErrOTPExpired),
			errors.Is(err, auth.ErrPasswordMismatch), errors.Is(err, util.ErrPasswordPolicy):
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Printf("[auth] reset password: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, "password reset successfully", nil)
	}
}

// reqContext bounds DB work to a per-request budget.
func reqContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 15*time.Second)
}
