package mapper

import (
	"strings"
	coreDto "trainhub-api/core/dto"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/utils"
	"trainhub-api/modules/org/dto"
	"trainhub-api/modules/org/entity"
)

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func activeOrDefault(v *bool) bool {
	return v == nil || *v
}

func ToCityEntity(req *dto.CityRequest) *entity.City {
	return &entity.City{Name: strings.TrimSpace(req.Name), IsActive: activeOrDefault(req.IsActive)}
}

func ToCityResponse(c *entity.City) dto.CityResponse {
	return dto.CityResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func ToAssociationEntity(req *dto.AssociationRequest) (*entity.Association, error) {
	cityID, err := utils.ToUUIDPtr(req.CityID)
	if err != nil {
		return nil, err
	}
	return &entity.Association{
		Name:        strings.TrimSpace(req.Name),
		Address:     optional(req.Address),
		CityID:      cityID,
		PhoneNumber: optional(req.PhoneNumber),
		Email:       optional(strings.ToLower(req.Email)),
		IsActive:    activeOrDefault(req.IsActive),
	}, nil
}

func ToAssociationResponse(a *entity.Association) dto.AssociationResponse {
	return dto.AssociationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Address:     a.Address,
		CityID:      a.CityID,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToCenterEntity(req *dto.CenterRequest) (*entity.Center, error) {
	associationID, err := utils.ToUUID(req.AssociationID)
	if err != nil {
		return nil, err
	}
	cityID, err := utils.ToUUIDPtr(req.CityID)
	if err != nil {
		return nil, err
	}
	return &entity.Center{
		AssociationID: associationID,
		CityID:        cityID,
		Name:          strings.TrimSpace(req.Name),
		Address:       optional(req.Address),
		PhoneNumber:   optional(req.PhoneNumber),
		Email:         optional(strings.ToLower(req.Email)),
		IsActive:      activeOrDefault(req.IsActive),
	}, nil
}

func ToCenterResponse(c *entity.Center) dto.CenterResponse {
	return dto.CenterResponse{
		ID:            c.ID,
		AssociationID: c.AssociationID,
		CityID:        c.CityID,
		Name:          c.Name,
		Slug:          c.Slug,
		Address:       c.Address,
		PhoneNumber:   c.PhoneNumber,
		Email:         c.Email,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToRoomEntity(req *dto.RoomRequest) (*entity.Room, error) {
	centerID, err := utils.ToUUID(req.CenterID)
	if err != nil {
		return nil, err
	}
	return &entity.Room{
		CenterID: centerID,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		IsActive: activeOrDefault(req.IsActive),
	}, nil
}

func ToRoomResponse(r *entity.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:        r.ID,
		CenterID:  r.CenterID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToMaterialEntity(req *dto.MaterialRequest) (*entity.Material, error) {
	centerID, err := utils.ToUUID(req.CenterID)
	if err != nil {
		return nil, err
	}
	roomID, err := utils.ToUUIDPtr(req.RoomID)
	if err != nil {
		return nil, err
	}
	condition := req.Condition
	if condition == "" {
		condition = "good"
	}
	return &entity.Material{
		CenterID:  centerID,
		RoomID:    roomID,
		Name:      strings.TrimSpace(req.Name),
		Quantity:  req.Quantity,
		Condition: condition,
	}, nil
}

func ToMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:        m.ID,
		CenterID:  m.CenterID,
		RoomID:    m.RoomID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Condition: m.Condition,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToTrainingEntity(req *dto.TrainingRequest) *entity.Training {
	return &entity.Training{
		Name:        strings.TrimSpace(req.Name),
		Description: optional(req.Description),
		IsActive:    activeOrDefault(req.IsActive),
	}
}

func ToTrainingResponse(t *entity.Training) dto.TrainingResponse {
	return dto.TrainingResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTrainingResponses(trainings []entity.Training) []dto.TrainingResponse {
	out := make([]dto.TrainingResponse, len(trainings))
	for i := range trainings {
		out[i] = ToTrainingResponse(&trainings[i])
	}
	return out
}

func ToGroupEntity(req *dto.GroupRequest) (*entity.TrainingGroup, error) {
	centerID, err := utils.ToUUID(req.CenterID)
	if err != nil {
		return nil, err
	}
	trainingID, err := utils.ToUUID(req.TrainingID)
	if err != nil {
		return nil, err
	}
	return &entity.TrainingGroup{
		CenterID:   centerID,
		TrainingID: trainingID,
		Name:       strings.TrimSpace(req.Name),
		Capacity:   req.Capacity,
		IsActive:   activeOrDefault(req.IsActive),
	}, nil
}

func ToGroupResponse(g *entity.TrainingGroup) dto.GroupResponse {
	return dto.GroupResponse{
		ID:         g.ID,
		CenterID:   g.CenterID,
		TrainingID: g.TrainingID,
		Name:       g.Name,
		Capacity:   g.Capacity,
		IsActive:   g.IsActive,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// ToPage converts a page of entities; a nil page becomes an empty one.
func ToPage[E any, R any](p *coreEntity.Pagination[E], fn func(*E) R) *coreDto.Pagination[R] {
	if p == nil {
		return &coreDto.Pagination[R]{Items: []R{}}
	}
	return coreDto.MapPagination(p.Items, p.TotalItems, p.TotalPages, p.PageNumber, p.PageSize, fn)
}
