package web_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func (p *payload) Decode(data []byte) error {
	return json.Unmarshal(data, p)
}

func (p *payload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))

	var p payload
	require.NoError(t, web.Decode(r, &p))
	assert.Equal(t, "Ana", p.Name)
}

func TestDecode_RunsValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

	var p payload
	assert.EqualError(t, web.Decode(r, &p), "name is required")
}

func TestDecode_PayloadTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", web.MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var p payload
	err := web.Decode(r, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload exceeds")
	assert.Empty(t, p.Name)
}
