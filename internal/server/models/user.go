// Package models defines the server-side domain types.
package models

import "time"

// Sex is the enumerated sex attribute of a user record.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
	SexOther  Sex = "OTHER"
)

// Valid reports whether s is one of the three enumerated values.
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// User is a stored user record. PasswordHash holds a bcrypt hash only;
// the plaintext password never reaches this struct.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Address      string
	Phone        string // optional
	ImageKey     string // optional, object storage key of the avatar
	BloodType    string
	Sex          Sex
	Birthday     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
