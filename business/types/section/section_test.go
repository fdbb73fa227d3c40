package section_test

import (
	"testing"

	"github.com/jcpaschoal/agenda/business/types/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	k, err := section.Parse("heroSection")
	require.NoError(t, err)
	assert.Equal(t, section.Hero, k)

	_, err = section.Parse("pricingTable")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	all := section.All()
	require.Len(t, all, 11)
	assert.Equal(t, section.Hero, all[0])
	assert.Equal(t, section.Signup, all[10])
}
