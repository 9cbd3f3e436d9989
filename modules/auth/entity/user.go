package entity

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/entity"
	"trainhub-api/core/utils"

	"github.com/google/uuid"
)

type User struct {
	Email         string     `db:"email"`
	PhoneNumber   *string    `db:"phone_number"`
	Password      string     `db:"password"`
	FirstName     string     `db:"first_name"`
	LastName      string     `db:"last_name"`
	Role          authz.Role `db:"role"`
	AssociationID *uuid.UUID `db:"association_id"`
	CenterID      *uuid.UUID `db:"center_id"`
	GroupID       *uuid.UUID `db:"group_id"`
	IsActive      bool       `db:"is_active"`
	entity.BaseEntity
}

// Subject is what the user's tokens are issued for.
func (u *User) Subject() utils.TokenSubject {
	return utils.TokenSubject{
		UserID:        u.ID,
		Email:         u.Email,
		Role:          u.Role,
		CenterID:      u.CenterID,
		AssociationID: u.AssociationID,
		GroupID:       u.GroupID,
	}
}

type UserFilter struct {
	Role          *authz.Role
	CenterID      *uuid.UUID
	AssociationID *uuid.UUID
	GroupID       *uuid.UUID
	Search        string
}

type PaginatedUsers = entity.Pagination[User]
