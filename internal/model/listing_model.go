package model

import (
	"time"
)

// ListingModel 挂单镜像记录，每个token至多一条
type ListingModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TokenId uint64 `json:"token_id" gorm:"uniqueIndex;not null"`
	Price   uint64 `json:"price" gorm:"not null"`
}

// TableName 自定义表名
func (ListingModel) TableName() string {
	return "listing"
}
