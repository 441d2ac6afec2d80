package dto

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `form:"username" json:"username" validate:"required,max=64"`
	Password string `form:"password" json:"password" validate:"required,max=128"`
}

// SessionDTO 登录成功后返回, 令牌本身只写入 Cookie
type SessionDTO struct {
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt"`
}

// LoginPageDTO 登录入口
type LoginPageDTO struct {
	Title    string `json:"title"`
	LoggedIn bool   `json:"loggedIn"`
}
