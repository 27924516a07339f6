package models

type Project struct {
	ID          int64
	Name        string
	Description string
}
