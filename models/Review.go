package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID uint   `json:"userID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BoatID uint   `json:"boatID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User   User   `json:"user" gorm:"foreignKey:UserID"`
	Boat   Boat   `json:"boat" gorm:"foreignKey:BoatID"`
	Title  string `json:"title"`
	Body   string `json:"body" gorm:"type:text"`
	Stars  int    `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
}

// MeanStars returns the mean rating over the given reviews, 0 when none
// remain. Used to recompute a boat's rating after review changes.
func MeanStars(reviews []Review) float32 {
	if len(reviews) == 0 {
		return 0
	}
	var total int
	for _, r := range reviews {
		total += r.Stars
	}
	return float32(total) / float32(len(reviews))
}
