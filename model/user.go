package model

type UserSummary struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// DisplayName returns the user's name, falling back to the username.
func (u UserSummary) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
