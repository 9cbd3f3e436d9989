package mapper

import (
	"strings"
	"trainhub-api/core/authz"
	coreDto "trainhub-api/core/dto"
	"trainhub-api/core/utils"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/entity"
)

func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          string(u.Role),
		AssociationID: u.AssociationID,
		CenterID:      u.CenterID,
		GroupID:       u.GroupID,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserPaginationResponse(p *entity.PaginatedUsers) *dto.PaginatedUserResponse {
	if p == nil {
		return &dto.PaginatedUserResponse{Items: []dto.UserResponse{}}
	}
	return coreDto.MapPagination(p.Items, p.TotalItems, p.TotalPages, p.PageNumber, p.PageSize, ToUserResponse)
}

// ToUserEntity maps a create request. The password is left for the service
// to hash.
func ToUserEntity(req *dto.CreateUserRequest) (*entity.User, error) {
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      role,
		IsActive:  true,
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = utils.Ptr(req.PhoneNumber)
	}
	if err := applyScope(user, req.AssociationID, req.CenterID, req.GroupID); err != nil {
		return nil, err
	}
	return user, nil
}

// ApplyUpdate copies an update request onto an existing user.
func ApplyUpdate(user *entity.User, req *dto.UpdateUserRequest) error {
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return err
	}
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Role = role
	user.PhoneNumber = nil
	if req.PhoneNumber != "" {
		user.PhoneNumber = utils.Ptr(req.PhoneNumber)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	return applyScope(user, req.AssociationID, req.CenterID, req.GroupID)
}

func applyScope(user *entity.User, associationID, centerID, groupID string) error {
	var err error
	if user.AssociationID, err = utils.ToUUIDPtr(associationID); err != nil {
		return err
	}
	if user.CenterID, err = utils.ToUUIDPtr(centerID); err != nil {
		return err
	}
	if user.GroupID, err = utils.ToUUIDPtr(groupID); err != nil {
		return err
	}
	return nil
}
