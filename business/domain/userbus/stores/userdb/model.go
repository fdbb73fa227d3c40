package userdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/role"
)

type userDB struct {
	ID                 uuid.UUID      `db:"id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	Role               string         `db:"role"`
	PasswordHash       []byte         `db:"password_hash"`
	Avatar             sql.NullString `db:"avatar"`
	MustChangePassword bool           `db:"must_change_password"`
	CompanyID          uuid.NullUUID  `db:"company_id"`
	Enabled            bool           `db:"enabled"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func toDBUser(bus userbus.User) userDB {
	db := userDB{
		ID:                 bus.ID,
		Name:               bus.Name.String(),
		Email:              bus.Email.Address,
		Role:               bus.Role.String(),
		PasswordHash:       bus.PasswordHash,
		Avatar:             sql.NullString{String: bus.Avatar, Valid: bus.Avatar != ""},
		MustChangePassword: bus.MustChangePassword,
		Enabled:            bus.Enabled,
		CreatedAt:          bus.CreatedAt.UTC(),
		UpdatedAt:          bus.UpdatedAt.UTC(),
	}

	if bus.CompanyID != nil {
		db.CompanyID = uuid.NullUUID{UUID: *bus.CompanyID, Valid: true}
	}

	return db
}

func toBusUser(db userDB) (userbus.User, error) {
	usrRole, err := role.Parse(db.Role)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	bus := userbus.User{
		ID:                 db.ID,
		Name:               nme,
		Email:              mail.Address{Address: db.Email},
		Role:               usrRole,
		PasswordHash:       db.PasswordHash,
		Avatar:             db.Avatar.String,
		MustChangePassword: db.MustChangePassword,
		Enabled:            db.Enabled,
		CreatedAt:          db.CreatedAt.In(time.Local),
		UpdatedAt:          db.UpdatedAt.In(time.Local),
	}

	if db.CompanyID.Valid {
		id := db.CompanyID.UUID
		bus.CompanyID = &id
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
