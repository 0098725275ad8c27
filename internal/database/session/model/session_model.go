package model

import "strings"

// AdminUsername is the only identity granted the administrator role.
const AdminUsername = "admin"

type Session struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// New builds the session for a login, the role is decided by the username alone.
func New(username string) Session {
	username = strings.TrimSpace(username)
	return Session{Username: username, IsAdmin: IsAdminUsername(username)}
}

func IsAdminUsername(username string) bool {
	return strings.EqualFold(strings.TrimSpace(username), AdminUsername)
}
