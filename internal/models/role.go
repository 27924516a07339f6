package models

type Role struct {
	ID   int64
	Name string
}

// RoleDetail is a role together with its linked menus,
// as rendered by the role listing.
type RoleDetail struct {
	ID    int64
	Name  string
	Menus []Menu
}
