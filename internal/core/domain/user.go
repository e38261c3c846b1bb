package domain

// User is a stored user record.
type User struct {
	// ID is the store-assigned identifier. JSON stores allocate
	// sequential integers, SQLite stores allocate UUIDs; both are
	// compared as strings.
	ID string `json:"id"`

	// Name is the user's full name.
	Name string `json:"name"`

	// Email is the user's email address.
	Email string `json:"email"`

	// Address is the user's postal address.
	Address string `json:"address"`

	// Phone is the user's phone number.
	Phone string `json:"phone"`
}

// CreateUser carries the fields required to create a user.
type CreateUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UserUpdate describes a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Address == nil && u.Phone == nil
}

// Apply copies the set fields onto the target user.
func (u UserUpdate) Apply(target *User) {
	if u.Name != nil {
		target.Name = *u.Name
	}
	if u.Email != nil {
		target.Email = *u.Email
	}
	if u.Address != nil {
		target.Address = *u.Address
	}
	if u.Phone != nil {
		target.Phone = *u.Phone
	}
}
