package userinfo

type UpdateProfileRequest struct {
	Name        string `form:"name"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
	MailAddress string `form:"mail_address" binding:"omitempty,email"`
}

// Profile is the self-service view of an account.
type Profile struct {
	Idx         string `json:"idx"`
	Account     string `json:"account"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	MailAddress string `json:"mail_address,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	StickerURL  string `json:"sticker_url,omitempty"`
}
