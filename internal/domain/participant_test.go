package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
)

func TestNewOwner(t *testing.T) {
	p := domain.NewOwner("ana@example.com", "Ana")

	assert.Equal(t, domain.RoleOwner, p.Role)
	assert.True(t, p.IsOwner())
	assert.True(t, p.Confirmed, "owners are confirmed from creation")
	require.NotNil(t, p.Name)
	assert.Equal(t, "Ana", *p.Name)
	assert.Equal(t, "ana@example.com", p.Email)
}

func TestNewInvitee(t *testing.T) {
	p := domain.NewInvitee("bob@example.com")

	assert.Equal(t, domain.RoleInvitee, p.Role)
	assert.False(t, p.IsOwner())
	assert.False(t, p.Confirmed, "invitees start unconfirmed")
	assert.Nil(t, p.Name, "invitees have no name until they self-identify")
	assert.Equal(t, "bob@example.com", p.Email)
}
