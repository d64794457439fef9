package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
)

// UnknownAreaName is the placeholder rendered for inconsistencies whose
// area was deleted. Deletion is deliberately permissive: pending references
// keep their area id and degrade to this label on lookup.
const UnknownAreaName = "Área Desconhecida"

type Area struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Emails    []string  `gorm:"serializer:json" json:"emails"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewArea struct {
	Name   string   `json:"name" binding:"required"`
	Emails []string `json:"emails"`
}

/*
caches:
	Area:$id
	AreaList
*/

func (input *NewArea) validate() error {
	for _, email := range input.Emails {
		if !utils.IsValidEmail(email) {
			return utils.NewValidationError("invalid email address: %s", email)
		}
	}
	return nil
}

func CreateArea(ctx context.Context, input *NewArea) (*Area, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	area := Area{
		Name:   input.Name,
		Emails: input.Emails,
	}
	if area.Emails == nil {
		area.Emails = []string{}
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&area).Error
	if err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[Area](area.ID); err != nil {
		return nil, err
	}
	return &area, nil
}

func UpdateArea(ctx context.Context, id int, input *NewArea) (*Area, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	area, err := utils.FetchModel[Area](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(area).Updates(map[string]interface{}{
		"Name":   input.Name,
		"Emails": input.Emails,
	}).Error
	if err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[Area](id); err != nil {
		return nil, err
	}
	return area, nil
}

// DeleteArea removes the area even when inconsistencies still reference it.
// Dangling references resolve to UnknownAreaName.
func DeleteArea(ctx context.Context, id int) (*Area, error) {
	area, err := utils.FetchModel[Area](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Delete(area).Error
	if err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[Area](id); err != nil {
		return nil, err
	}
	return area, nil
}

func GetArea(ctx context.Context, id int) (*Area, error) {
	// find in redis
	result, err := utils.RetrieveRedis[Area](id)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	// fetch from db
	result, err = utils.FetchModel[Area](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.StoreRedis[Area](result, id); err != nil {
		return nil, err
	}
	return result, nil
}

func GetAreas(ctx context.Context) ([]*Area, error) {
	// first try redis cache
	results, err := utils.RetrieveRedisList[Area]()
	if err != nil {
		return nil, err
	}
	if results != nil {
		return results, nil
	}

	db := config.GetDB()
	if err = db.WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	if err := utils.StoreRedisList[Area](results); err != nil {
		return nil, err
	}
	return results, nil
}

// AreaNameByID resolves an area id against a loaded slice, degrading to the
// unknown-area placeholder instead of failing.
func AreaNameByID(areas []*Area, id int) string {
	for _, a := range areas {
		if a.ID == id {
			return a.Name
		}
	}
	return UnknownAreaName
}
