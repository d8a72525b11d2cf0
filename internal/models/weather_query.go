package models

import "github.com/google/uuid"

// WeatherQuery is one city lookup typed in by the user.
type WeatherQuery struct {
	ID   uuid.UUID
	City string
}

func NewWeatherQuery(city string) WeatherQuery {
	return WeatherQuery{ID: uuid.New(), City: city}
}
