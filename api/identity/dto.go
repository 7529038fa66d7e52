package identity

// AuthRequest carries the credentials of register and login requests.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	BestLevel int    `json:"best_level"`
	Token     string `json:"token"`
}
