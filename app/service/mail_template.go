package service

import "fmt"

const (
	LangEN = "en"
	LangVN = "vn"
)

func resetPasswordSubject(langCode string) string {
	if langCode == LangVN {
		return "Đặt lại mật khẩu"
	}
	return "Reset password"
}

func resetPasswordBody(langCode, fullName, resetURL string) string {
	if fullName == "" {
		fullName = "customer"
	}

	if langCode == LangVN {
		return fmt.Sprintf(`<div>
  <p>Xin chào %s,</p>
  <p>Chúng tôi nhận được yêu cầu đặt lại mật khẩu cho tài khoản của bạn.</p>
  <p><a href="%s">Nhấn vào đây để đặt lại mật khẩu</a></p>
  <p>Nếu bạn không yêu cầu, vui lòng bỏ qua email này.</p>
</div>`, fullName, resetURL)
	}

	return fmt.Sprintf(`<div>
  <p>Hello %s,</p>
  <p>We received a request to reset the password for your account.</p>
  <p><a href="%s">Click here to reset your password</a></p>
  <p>If you did not request this, please ignore this email.</p>
</div>`, fullName, resetURL)
}
