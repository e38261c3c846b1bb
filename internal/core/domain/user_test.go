package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserUpdate_Empty(t *testing.T) {
	assert.True(t, UserUpdate{}.Empty())

	name := "Ada"
	assert.False(t, UserUpdate{Name: &name}.Empty())
}

func TestUserUpdate_Apply(t *testing.T) {
	user := User{ID: "1", Name: "Ada", Email: "ada@example.com", Phone: "555-0100"}

	email := "lovelace@example.com"
	update := UserUpdate{Email: &email}
	update.Apply(&user)

	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "lovelace@example.com", user.Email)
	assert.Equal(t, "555-0100", user.Phone)
}

func TestUserUpdate_ApplyCanClearField(t *testing.T) {
	user := User{ID: "1", Name: "Ada", Address: "12 Crescent Rd"}

	empty := ""
	UserUpdate{Address: &empty}.Apply(&user)

	assert.Equal(t, "", user.Address)
}
