package models

// WeatherReport mirrors the subset of the WeatherAPI current.json payload we display.
// Every field is a pointer: the API does not promise any of them, and an absent
// section must stay distinguishable from an empty one.
type WeatherReport struct {
	Location *Location `json:"location"`
	Current  *Current  `json:"current"`
}

type Location struct {
	Name      *Value `json:"name"`
	Region    *Value `json:"region"`
	Country   *Value `json:"country"`
	LocalTime *Value `json:"localtime"`
}

type Current struct {
	TempC      *Value     `json:"temp_c"`
	TempF      *Value     `json:"temp_f"`
	Condition  *Condition `json:"condition"`
	Humidity   *Value     `json:"humidity"`
	WindKph    *Value     `json:"wind_kph"`
	WindDir    *Value     `json:"wind_dir"`
	PressureMb *Value     `json:"pressure_mb"`
	FeelsLikeC *Value     `json:"feelslike_c"`
	FeelsLikeF *Value     `json:"feelslike_f"`
}

type Condition struct {
	Text *Value `json:"text"`
}

// APIError is the error envelope WeatherAPI returns on non-2xx responses.
type APIError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
