package models

import "time"

// CurrentUser is the signed-in user record kept in the session
type CurrentUser struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	LoggedAt time.Time `json:"loggedAt"`
}
