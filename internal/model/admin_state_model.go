package model

import (
	"time"
)

// AdminStateModel 管理配置单例，固定只有一行
type AdminStateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner              string `json:"owner" gorm:"not null"`
	CharityAddress     string `json:"charity_address" gorm:"not null"`
	DonationPercentage uint64 `json:"donation_percentage" gorm:"not null"`
	Paused             bool   `json:"paused" gorm:"default:false"`
}

// TableName 自定义表名
func (AdminStateModel) TableName() string {
	return "admin_state"
}
