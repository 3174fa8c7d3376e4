package models

import "time"

// BirthdayLayout is the wire format for the birthday field.
const BirthdayLayout = "2006-01-02"

// CreateUserRequest carries the fields accepted on user creation.
// Birthday is a calendar date string in BirthdayLayout form.
type CreateUserRequest struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	BloodType string `json:"bloodType"`
	Sex       Sex    `json:"sex"`
	Birthday  string `json:"birthday"`
}

// UpdateUserRequest carries a partial update. Nil fields are left untouched.
// Password, when present and non-empty, is rehashed; the stored hash is never
// overwritten otherwise.
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BloodType *string `json:"bloodType,omitempty"`
	Sex       *Sex    `json:"sex,omitempty"`
	Birthday  *string `json:"birthday,omitempty"`
}

// UserResponse is the outward shape of a user record. It deliberately has no
// password field.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	ImageKey  string `json:"img,omitempty"`
	BloodType string `json:"bloodType"`
	Sex       Sex    `json:"sex"`
	Birthday  string `json:"birthday"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NewUserResponse converts a stored record to its outward shape.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Surname:   u.Surname,
		Address:   u.Address,
		Phone:     u.Phone,
		ImageKey:  u.ImageKey,
		BloodType: u.BloodType,
		Sex:       u.Sex,
		Birthday:  u.Birthday.Format(BirthdayLayout),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
