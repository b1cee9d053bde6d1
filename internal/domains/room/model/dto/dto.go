package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	CategoryID string `json:"category_id" validate:"required"`
	Floor      int    `json:"floor"       validate:"omitempty,min=0"`
	Status     string `json:"status"      validate:"omitempty,oneof=available occupied cleaning maintenance"`
	Active     *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:         uuid.NewString(),
		Name:       c.Name,
		CategoryID: c.CategoryID,
		Floor:      c.Floor,
		Status:     status,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	CategoryID string `db:"category_id" json:"category_id" validate:"omitempty"`
	Floor      *int   `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	Status     string `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied cleaning maintenance"`
	Active     *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Floor      int    `json:"floor"`
	Status     string `json:"status"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.CategoryID = model.CategoryID
	r.Floor = model.Floor
	r.Status = model.Status
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
