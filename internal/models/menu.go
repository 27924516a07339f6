package models

// Menu is a permission descriptor. Name is the machine code
// (e.g. "view_users"), Label the display text, Icon the client icon class.
type Menu struct {
	ID    int64
	Name  string
	Label string
	Icon  string
}
