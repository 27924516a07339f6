package models

type User struct {
	ID       int64
	Username string
	Email    string
	Password string
	RoleID   int64
	RoleName string
}
