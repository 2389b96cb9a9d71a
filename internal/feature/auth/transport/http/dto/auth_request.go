// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// 必須チェックはユースケース側で行うため binding タグは付けません。
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SignupReq は /signup のリクエストボディです。
type SignupReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginReq は /login のリクエストボディです。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailReq は /forgot-password と /send-signup-otp のリクエストボディです。
type EmailReq struct {
	Email string `json:"email"`
}

// ResetPasswordReq は /reset-password のリクエストボディです。
type ResetPasswordReq struct {
	Email       string  `json:"email"`
	OTP         OTPCode `json:"otp"`
	NewPassword string  `json:"newPassword"`
}

// VerifySignupOTPReq は /verify-signup-otp のリクエストボディです。
type VerifySignupOTPReq struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	OTP      OTPCode `json:"otp"`
}

// OTPCode はJSONの文字列・数値どちらでも受け付けるワンタイムコードです。
type OTPCode string

// UnmarshalJSON は "123456" と 123456 の両方を受け付けます。
func (c *OTPCode) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = OTPCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("otp must be a string or number: %w", err)
	}
	*c = OTPCode(n.String())
	return nil
}
