package model

import "time"

type User struct {
	Id        string    `gorm:"type:varchar(128);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
