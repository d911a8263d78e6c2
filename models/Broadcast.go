package models

import "gorm.io/gorm"

// Broadcast records one admin message fanned out to an audience segment.
type Broadcast struct {
	gorm.Model
	AdminID  uint   `json:"adminID" gorm:"index"`
	Audience string `json:"audience" gorm:"type:varchar(20)"` // all, hosts, guests
	Text     string `json:"text" gorm:"type:text"`
	SentTo   int    `json:"sentTo"`
}
