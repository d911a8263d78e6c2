package models

import "gorm.io/gorm"

// Location taxonomy used by the search surface and admin panel.

type Country struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Code string `json:"code" gorm:"size:2"`
}

type City struct {
	gorm.Model
	Name      string   `json:"name" gorm:"not null;index"`
	CountryID uint     `json:"countryID" gorm:"index"`
	Country   *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
}

type Port struct {
	gorm.Model
	Name   string  `json:"name" gorm:"not null;index"`
	CityID uint    `json:"cityID" gorm:"index"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	City   *City   `json:"city,omitempty" gorm:"foreignKey:CityID"`
}
