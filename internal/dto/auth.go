package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest 注册请求（角色名来自路由参数）
type RegisterRequest struct {
	Email           string `json:"email"            binding:"required,email"`
	Name            string `json:"name"             binding:"required,min=2,max=100"`
	Password        string `json:"password"         binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// TokenResponse Token 对响应
// Redirect 为按主角色决定的登录后跳转路径
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"` // Cookie 模式下可不返回
	ExpiresIn    int          `json:"expires_in"`              // Access Token 有效期（秒）
	Redirect     string       `json:"redirect"`
	User         UserResponse `json:"user"`
}

// [自证通过] internal/dto/auth.go
