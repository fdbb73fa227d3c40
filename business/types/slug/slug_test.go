package slug_test

import (
	"testing"

	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"barbearia-central", "barbearia-central", true},
		{"Salao-da-Ana", "salao-da-ana", true},
		{"ab", "", false},
		{"-leading", "", false},
		{"double--dash", "", false},
		{"has space", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := slug.Parse(tt.in)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestParseNull(t *testing.T) {
	n, err := slug.ParseNull("")
	require.NoError(t, err)
	assert.False(t, n.Valid())
	assert.False(t, slug.ToSQLNullString(n).Valid)

	n, err = slug.ParseNull("studio-9")
	require.NoError(t, err)
	assert.True(t, n.Valid())
	assert.Equal(t, "studio-9", slug.ToSQLNullString(n).String)
}
