package models

// User is an authenticated shop operator.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"name"`
}
