package page_test

import (
	"testing"

	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	pg, err := page.Parse("", "")
	require.NoError(t, err)

	assert.Equal(t, 1, pg.Number())
	assert.Equal(t, 10, pg.RowsPerPage())
	assert.Equal(t, 0, pg.Offset())
}

func TestParse_Offset(t *testing.T) {
	pg := page.MustParse("3", "20")
	assert.Equal(t, 40, pg.Offset())
}

func TestParse_Invalid(t *testing.T) {
	for _, tc := range [][2]string{{"0", "10"}, {"1", "0"}, {"1", "101"}, {"x", "10"}, {"1", "y"}} {
		_, err := page.Parse(tc[0], tc[1])
		assert.Error(t, err, "page=%s rows=%s", tc[0], tc[1])
	}
}
