package userbus_test

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]userbus.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]userbus.User)}
}

func (m *memStore) NewWithTx(sqldb.CommitRollbacker) (userbus.Storer, error) { return m, nil }

func (m *memStore) Create(_ context.Context, usr userbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.users {
		if other.Email.Address == usr.Email.Address {
			return userbus.ErrUniqueEmail
		}
	}

	m.users[usr.ID] = usr
	return nil
}

func (m *memStore) Update(_ context.Context, usr userbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[usr.ID] = usr
	return nil
}

func (m *memStore) Delete(_ context.Context, usr userbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, usr.ID)
	return nil
}

func (m *memStore) Query(context.Context, userbus.QueryFilter, order.By, page.Page) ([]userbus.User, error) {
	return nil, nil
}

func (m *memStore) Count(context.Context, userbus.QueryFilter) (int, error) {
	return len(m.users), nil
}

func (m *memStore) QueryByID(_ context.Context, id uuid.UUID) (userbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	usr, ok := m.users[id]
	if !ok {
		return userbus.User{}, userbus.ErrNotFound
	}
	return usr, nil
}

func (m *memStore) QueryByEmail(_ context.Context, email mail.Address) (userbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, usr := range m.users {
		if usr.Email.Address == email.Address {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

func newCore(store userbus.Storer, options ...userbus.Option) *userbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return userbus.NewCore(log, store, options...)
}

func newUser(email string) userbus.NewUser {
	return userbus.NewUser{
		Name:     "Ana Souza",
		Email:    email,
		Password: "s3cret!pass",
	}
}

// =============================================================================

func TestCreate_HashesPassword(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	core := newCore(store)

	usr, err := core.Create(ctx, newUser("ana@example.com"))
	require.NoError(t, err)

	stored, err := store.QueryByID(ctx, usr.ID)
	require.NoError(t, err)

	assert.NotEqual(t, []byte("s3cret!pass"), stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("s3cret!pass")))

	cost, err := bcrypt.Cost(stored.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, userbus.HashCost, cost)

	assert.Equal(t, role.Professional, stored.Role)
	assert.True(t, stored.Enabled)
	assert.False(t, stored.MustChangePassword)
	assert.Nil(t, stored.CompanyID)
}

func TestCreate_SaltedHashDiffers(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	a, err := core.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	b, err := core.Create(ctx, newUser("b@example.com"))
	require.NoError(t, err)

	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestCreate_ValidationErrors(t *testing.T) {
	core := newCore(newMemStore())

	tests := []struct {
		name  string
		nu    userbus.NewUser
		field string
	}{
		{"missing name", userbus.NewUser{Email: "a@example.com", Password: "s3cret!pass"}, "name"},
		{"missing email", userbus.NewUser{Name: "Ana", Password: "s3cret!pass"}, "email"},
		{"malformed email", userbus.NewUser{Name: "Ana", Email: "ana-at-example", Password: "s3cret!pass"}, "email"},
		{"missing password", userbus.NewUser{Name: "Ana", Email: "a@example.com"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Create(context.Background(), tt.nu)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalid)

			field, ok := validation.Field(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	_, err := core.Create(ctx, newUser("ana@example.com"))
	require.NoError(t, err)

	_, err = core.Create(ctx, newUser("ana@example.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, userbus.ErrUniqueEmail))

	field, ok := validation.Field(err)
	require.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestUpdate_WithoutPasswordKeepsHash(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	core := newCore(store)

	usr, err := core.Create(ctx, newUser("ana@example.com"))
	require.NoError(t, err)
	before := append([]byte(nil), usr.PasswordHash...)

	newName := "Ana Lima"
	avatar := "avatars/ana.png"
	for range 3 {
		usr, err = core.Update(ctx, usr, userbus.UpdateUser{Name: &newName, Avatar: &avatar})
		require.NoError(t, err)
	}

	stored, err := store.QueryByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, before, stored.PasswordHash)
	assert.Equal(t, "Ana Lima", stored.Name.String())
}

func TestUpdate_SamePasswordKeepsHash(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	usr, err := core.Create(ctx, newUser("ana@example.com"))
	require.NoError(t, err)

	same := "s3cret!pass"
	upd, err := core.Update(ctx, usr, userbus.UpdateUser{Password: &same})
	require.NoError(t, err)

	assert.Equal(t, usr.PasswordHash, upd.PasswordHash)
}

func TestUpdate_ChangedPasswordRehashes(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	nu := newUser("ana@example.com")
	nu.MustChangePassword = true
	usr, err := core.Create(ctx, nu)
	require.NoError(t, err)

	changed := "n3w-secret"
	upd, err := core.Update(ctx, usr, userbus.UpdateUser{Password: &changed})
	require.NoError(t, err)

	assert.NotEqual(t, usr.PasswordHash, upd.PasswordHash)
	assert.NotEqual(t, []byte(changed), upd.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(upd.PasswordHash, []byte(changed)))
	assert.False(t, upd.MustChangePassword)
	assert.Equal(t, usr.ID, upd.ID)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	usr, err := core.Create(ctx, newUser("ana@example.com"))
	require.NoError(t, err)

	got, err := core.Authenticate(ctx, mail.Address{Address: "ana@example.com"}, "s3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = core.Authenticate(ctx, mail.Address{Address: "ana@example.com"}, "wrong-pass")
	assert.ErrorIs(t, err, userbus.ErrAuthenticationFailure)

	_, err = core.Authenticate(ctx, mail.Address{Address: "nobody@example.com"}, "s3cret!pass")
	assert.ErrorIs(t, err, userbus.ErrNotFound)
}

func TestNewWithTx_KeepsPipeline(t *testing.T) {
	var calls int
	count := func(context.Context, *userbus.Write) error {
		calls++
		return nil
	}

	core := newCore(newMemStore(),
		userbus.WithCreateSteps(userbus.Validate, count, userbus.HashPassword(bcrypt.MinCost)),
	)

	txCore, err := core.NewWithTx(nil)
	require.NoError(t, err)

	usr, err := txCore.Create(context.Background(), newUser("tx@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	cost, err := bcrypt.Cost(usr.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
