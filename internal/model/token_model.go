package model

import (
	"time"
)

// TokenModel NFT镜像记录
type TokenModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TokenId  uint64 `json:"token_id" gorm:"uniqueIndex;not null"`
	Owner    string `json:"owner" gorm:"not null;index"`
	Creator  string `json:"creator" gorm:"not null"`
	URI      string `json:"uri" gorm:"type:text"`
	Category string `json:"category"`
}

// TableName 自定义表名
func (TokenModel) TableName() string {
	return "token"
}
