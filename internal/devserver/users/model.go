package users

import "time"

type User struct {
	ID        string
	Phone     string
	Name      string
	CreatedAt time.Time
}
