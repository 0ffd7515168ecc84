package auth

// Admin represents a stored administrator credential.
type Admin struct {
	Username     string
	PasswordHash string
}
