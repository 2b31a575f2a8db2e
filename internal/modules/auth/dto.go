package auth

type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserPublic struct {
	Idx       string `json:"idx"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Group     string `json:"group"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}
