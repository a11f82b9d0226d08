package api

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateListRequest creates a list owned by the caller.
type CreateListRequest struct {
	Name string `json:"name"`
}

// CreateListResponse returns the server-assigned list id.
type CreateListResponse struct {
	ID string `json:"id"`
}

// ShareListRequest grants another account collaborator access to a list.
type ShareListRequest struct {
	Email string `json:"email"`
}
