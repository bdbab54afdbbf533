package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMatricula(t *testing.T) {
	valid := []string{"A01234567", "A00000000", "A99999999"}
	for _, m := range valid {
		assert.True(t, ValidMatricula(m), m)
	}

	invalid := []string{
		"",
		"A1234567",    // seven digits
		"A012345678",  // nine digits
		"B01234567",   // wrong prefix
		"a01234567",   // lowercase prefix
		"A0123456X",   // non-digit
		" A01234567",  // leading space
		"A01234567 ",  // trailing space
	}
	for _, m := range invalid {
		assert.False(t, ValidMatricula(m), m)
	}
}

func TestEffectiveRole_DefaultsToPlayer(t *testing.T) {
	u := &User{}
	assert.Equal(t, RolePlayer, u.EffectiveRole())

	u.Role = RoleAdmin
	assert.Equal(t, RoleAdmin, u.EffectiveRole())
}

func TestProfileComplete(t *testing.T) {
	u := &User{}
	assert.False(t, u.ProfileComplete())

	u.Matricula = "A01234567"
	assert.True(t, u.ProfileComplete())
}
