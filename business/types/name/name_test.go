package name_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	n, err := name.Parse("  Barbearia Central ")
	require.NoError(t, err)
	assert.Equal(t, "Barbearia Central", n.String())

	_, err = name.Parse("   ")
	assert.ErrorIs(t, err, name.ErrEmpty)

	_, err = name.Parse(strings.Repeat("á", 121))
	assert.EqualError(t, err, "exceeds 120 characters")
}
