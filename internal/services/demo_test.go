package services

import (
	"testing"

	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDemo(t *testing.T) *DemoDirectory {
	d, err := NewDemoDirectory("demo123", bcrypt.MinCost)
	require.NoError(t, err)
	return d
}

func TestDemoDirectory(t *testing.T) {
	d := newTestDemo(t)

	a, ok := d.Authenticate("Student@RRC.ca", "demo123")
	require.True(t, ok)
	assert.Equal(t, models.RoleStudent, a.Role)
	assert.Equal(t, "student@rrc.ca", a.Email)

	_, ok = d.Authenticate("student@rrc.ca", "wrong")
	assert.False(t, ok)

	_, ok = d.Authenticate("nobody@rrc.ca", "demo123")
	assert.False(t, ok)

	r, ok := d.ForRole(models.RoleResearcher)
	require.True(t, ok)
	assert.Equal(t, "researcher@rrc.ca", r.Email)

	_, ok = d.ForRole("admin")
	assert.False(t, ok)
}
