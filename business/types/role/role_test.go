package role_test

import (
	"testing"

	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := role.Parse("company_admin")
	require.NoError(t, err)
	assert.True(t, r.Equal(role.CompanyAdmin))

	r, err = role.Parse("")
	require.NoError(t, err)
	assert.Equal(t, role.Professional, r)

	_, err = role.Parse("ADMIN")
	assert.Error(t, err)
}

func TestParseMany(t *testing.T) {
	roles, err := role.ParseMany([]string{"super_admin", "professional"})
	require.NoError(t, err)
	assert.Equal(t, []string{"super_admin", "professional"}, role.ParseToString(roles))

	_, err = role.ParseMany([]string{"owner"})
	assert.Error(t, err)
}
