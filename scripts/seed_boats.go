package main

import (
	"barquea-server/models"
	"barquea-server/storage"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds a demo host, the location taxonomy and a handful of boat listings.
// Run once against a fresh database.
func main() {
	storage.InitializeDB()

	password, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing demo password: %v", err)
	}

	host := models.User{
		FirstName:    "Nadia",
		LastName:     "Marchetti",
		Email:        "nadia@barquea.demo",
		Password:     string(password),
		Role:         "host",
		HostStatus:   "approved",
		HostBio:      "Skipper and boat owner on the Ligurian coast.",
		ResponseTime: "within an hour",
	}
	if err := storage.DB.Where("email = ?", host.Email).FirstOrCreate(&host).Error; err != nil {
		log.Fatalf("Error seeding host: %v", err)
	}

	country := models.Country{Name: "Italy", Code: "IT"}
	storage.DB.Where("name = ?", country.Name).FirstOrCreate(&country)
	city := models.City{Name: "Genoa", CountryID: country.ID}
	storage.DB.Where("name = ? AND country_id = ?", city.Name, country.ID).FirstOrCreate(&city)
	port := models.Port{Name: "Porto Antico", CityID: city.ID, Lat: 44.4086, Lng: 8.9263}
	storage.DB.Where("name = ?", port.Name).FirstOrCreate(&port)

	available := true
	boats := []models.Boat{
		{
			Name:         "Vento Azzurro",
			Description:  "Classic 12m sailboat, ideal for coastal day trips.",
			City:         "Genoa",
			Country:      "Italy",
			Lat:          44.4056,
			Lng:          8.9463,
			PricePerHour: 85,
			PricePerDay:  520,
			Capacity:     8,
			BoatType:     "sailboat",
			LengthMeters: 12,
			Year:         2015,
			Brand:        "Beneteau",
		},
		{
			Name:         "Stella del Mare",
			Description:  "Fast motorboat with sun deck and snorkeling gear.",
			City:         "Genoa",
			Country:      "Italy",
			Lat:          44.4102,
			Lng:          8.9210,
			PricePerHour: 140,
			PricePerDay:  900,
			Capacity:     10,
			BoatType:     "motorboat",
			LengthMeters: 9,
			Year:         2019,
			Brand:        "Azimut",
		},
		{
			Name:         "Laguna Blu",
			Description:  "Spacious catamaran for groups and events.",
			City:         "Portofino",
			Country:      "Italy",
			Lat:          44.3032,
			Lng:          9.2097,
			PricePerHour: 220,
			PricePerDay:  1500,
			Capacity:     16,
			BoatType:     "catamaran",
			LengthMeters: 14,
			Year:         2021,
			Brand:        "Lagoon",
		},
	}

	amenities := []string{"WiFi", "GPS", "Radio", "Cooler"}
	amenitiesJSON, _ := json.Marshal(amenities)

	for i := range boats {
		boats[i].HostID = host.ID
		boats[i].HostName = host.FirstName + " " + host.LastName
		boats[i].HostResponseTime = host.ResponseTime
		boats[i].IsAvailable = &available
		boats[i].Amenities = datatypes.JSON(amenitiesJSON)
		boats[i].LifeJackets = true
		boats[i].CancellationPolicy = "flexible"
		boats[i].MinRentalHours = 2
		boats[i].MaxRentalHours = 12

		if err := storage.DB.Where("name = ? AND host_id = ?", boats[i].Name, host.ID).
			FirstOrCreate(&boats[i]).Error; err != nil {
			log.Fatalf("Error seeding boat %q: %v", boats[i].Name, err)
		}
	}

	fmt.Println("Seed completed successfully!")
}
