package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldName       = "name"
	FieldCategoryID = "category_id"
	FieldFloor      = "floor"
	FieldStatus     = "status"
	FieldActive     = "active"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusCleaning    = "cleaning"
	StatusMaintenance = "maintenance"
)

type Room struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	CategoryID string `db:"category_id"`
	Floor      int    `db:"floor"`
	Status     string `db:"status"`
	Active     bool   `db:"active"`
	model.Metadata
}
