// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentease_backend/internal/api"
	"rentease_backend/internal/feature/auth/domain/entity"
	"rentease_backend/internal/feature/auth/transport/http/dto"
	"rentease_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は確認用パスワード付きで新規ユーザーを登録します。
	Signup(ctx context.Context, name, email, password, confirm string) error
	// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// ForgotPassword はパスワード再設定用のOTPをメール送信します。
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword はOTPを検証してパスワードを更新します。
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	// SendSignupOTP は登録用のOTPをメール送信します。
	SendSignupOTP(ctx context.Context, email string) error
	// VerifySignupOTP はOTPを検証してユーザーを作成します。
	VerifySignupOTP(ctx context.Context, name, email, password, code string) error
}

// clientErrors は 400 でメッセージをそのまま返すユースケースエラーです。
var clientErrors = []error{
	usecase.ErrAllFieldsRequired,
	usecase.ErrPasswordMismatch,
	usecase.ErrEmailAlreadyExists,
	usecase.ErrUserNotFound,
	usecase.ErrInvalidCredentials,
	usecase.ErrEmailNotFound,
	usecase.ErrEmailRequired,
	usecase.ErrInvalidOrExpiredOTP,
	usecase.ErrOTPNotRequested,
	usecase.ErrInvalidOTP,
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は POST /api/signup を処理します。成功時は201を返却します。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if !bind(c, &req) {
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword); err != nil {
		h.fail(c, "signup", req.Email, err)
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "Signup successful. Please login now."})
}

// Login は POST /api/login を処理します。
// 認証成功時はトークンと公開用ユーザー情報を返却します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if !bind(c, &req) {
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", req.Email, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    api.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// ForgotPassword は POST /api/forgot-password を処理します。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailReq
	if !bind(c, &req) {
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, "forgot-password", req.Email, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "OTP sent to your email"})
}

// ResetPassword は POST /api/reset-password を処理します。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if !bind(c, &req) {
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, string(req.OTP), req.NewPassword); err != nil {
		h.fail(c, "reset-password", req.Email, err)
		return
	}
	slog.Info("password reset successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset successful. You can now login."})
}

// SendSignupOTP は POST /api/send-signup-otp を処理します。
func (h *AuthHandler) SendSignupOTP(c *gin.Context) {
	var req dto.EmailReq
	if !bind(c, &req) {
		return
	}
	if err := h.auth.SendSignupOTP(c.Request.Context(), req.Email); err != nil {
		h.fail(c, "send-signup-otp", req.Email, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "OTP sent to your email"})
}

// VerifySignupOTP は POST /api/verify-signup-otp を処理します。
func (h *AuthHandler) VerifySignupOTP(c *gin.Context) {
	var req dto.VerifySignupOTPReq
	if !bind(c, &req) {
		return
	}
	if err := h.auth.VerifySignupOTP(c.Request.Context(), req.Name, req.Email, req.Password, string(req.OTP)); err != nil {
		h.fail(c, "verify-signup-otp", req.Email, err)
		return
	}
	slog.Info("user registered via otp", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Signup successful! You can now login."})
}

// bind はJSONボディを読み込みます。失敗時は400を返却して false を返します。
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn("auth request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// fail はユースケースエラーをステータスコードに変換します。
// クライアント起因のエラーは400でメッセージを返し、それ以外は500です。
func (h *AuthHandler) fail(c *gin.Context, op, email string, err error) {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			slog.Warn(op+" rejected", "error", err, "email", email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: target.Error()})
			return
		}
	}
	slog.Error(op+" failed", "error", err, "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusInternalServerError, api.ServerError(err))
}
