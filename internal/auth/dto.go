package auth

// RegisterDTO is the transport shape for account creation requests.
type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if d.Username == "" || d.Password == "" {
		return ValidationError{Msg: "Username and password required"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Username == "" || d.Password == "" {
		return ValidationError{Msg: "Username and password required"}
	}
	return nil
}
