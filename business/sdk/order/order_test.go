package order_test

import (
	"testing"

	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mappings = map[string]string{
	"name":  "b",
	"email": "c",
}

func TestParse(t *testing.T) {
	def := order.NewBy("a", order.ASC)

	got, err := order.Parse(mappings, "", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = order.Parse(mappings, "name", def)
	require.NoError(t, err)
	assert.Equal(t, order.NewBy("b", order.ASC), got)

	got, err = order.Parse(mappings, "email, desc", def)
	require.NoError(t, err)
	assert.Equal(t, order.NewBy("c", order.DESC), got)
}

func TestParse_Errors(t *testing.T) {
	def := order.NewBy("a", order.ASC)

	_, err := order.Parse(mappings, "password", def)
	assert.Error(t, err)

	_, err = order.Parse(mappings, "name,sideways", def)
	assert.Error(t, err)

	_, err = order.Parse(mappings, "name,asc,extra", def)
	assert.Error(t, err)
}
