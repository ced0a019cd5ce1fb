package domain

import "time"

// User represents a registered user of the system.
type User struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	JoinAt       time.Time
	LastLoginAt  *time.Time
}

// PublicProfile is the subset of User safe to show to other users.
type PublicProfile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// Public strips credentials and timestamps from a user record.
func (u User) Public() PublicProfile {
	return PublicProfile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
