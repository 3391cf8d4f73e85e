package models

import "time"

type OwnerModel struct {
	ID         int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string          `json:"name" gorm:"type:varchar(200);not null"`
	Address    string          `json:"address" gorm:"type:varchar(250);not null"`
	Photo      *string         `json:"photo" gorm:"type:varchar(2048)"`
	Birthday   *time.Time      `json:"birthday"`
	Properties []PropertyModel `json:"properties,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (OwnerModel) TableName() string {
	return "owners"
}
