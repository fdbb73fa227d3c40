package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestCheck_UsesJSONFieldNames(t *testing.T) {
	err := errs.Check(signup{Email: "not-an-email"})
	require.Error(t, err)

	var fe errs.FieldErrors
	require.True(t, errors.As(err, &fe))

	fields := fe.Fields()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, errs.Check(signup{Email: "ana@example.com", Name: "Ana"}))
}

func TestError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, errs.New(errs.AlreadyExists, errors.New("dup")).HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, errs.NewFieldErrors("email", errors.New("bad")).HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, errs.Errorf(errs.Unauthenticated, "no token").HTTPStatus())
}

func TestGetError(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", errs.New(errs.NotFound, errors.New("missing")))

	assert.True(t, errs.IsError(wrapped))
	assert.Equal(t, errs.NotFound, errs.GetError(wrapped).Code)
	assert.Nil(t, errs.GetError(errors.New("plain")))
}

func TestErrCode_Text(t *testing.T) {
	data, err := errs.PermissionDenied.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "permission_denied", string(data))

	var ec errs.ErrCode
	require.NoError(t, ec.UnmarshalText([]byte("not_found")))
	assert.Equal(t, errs.NotFound, ec)
}

func TestFromFieldError(t *testing.T) {
	err := fmt.Errorf("create: %w", validation.NewFieldError("customUrl", errors.New("custom url is not unique")))

	appErr, ok := errs.FromFieldError(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidArgument, appErr.Code)
	assert.Contains(t, appErr.Message, "customUrl")

	_, ok = errs.FromFieldError(errors.New("plain"))
	assert.False(t, ok)
}
