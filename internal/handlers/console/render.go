package console

import (
	"fmt"
	"io"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

const (
	notAvailable      = "N/A"
	invalidReportText = "Invalid weather data received. Cannot display."
)

// Render writes a human readable current conditions block for report.
// A report without its location or current section is rejected as a whole.
func Render(w io.Writer, report models.WeatherReport) error {
	if report.Location == nil || report.Current == nil {
		_, err := fmt.Fprintln(w, invalidReportText)
		return err
	}

	loc := report.Location
	cur := report.Current

	var condition *models.Value
	if cur.Condition != nil {
		condition = cur.Condition.Text
	}

	_, err := fmt.Fprintf(w, `
--- Current Weather Conditions ---
Location: %s, %s, %s
Local Time: %s
Condition: %s
Temperature: %s°C (%s°F)
Feels like: %s°C (%s°F)
Humidity: %s%%
Wind: %s kph %s
Pressure: %s mb
----------------------------------
`,
		field(loc.Name), field(loc.Region), field(loc.Country),
		field(loc.LocalTime),
		field(condition),
		field(cur.TempC), field(cur.TempF),
		field(cur.FeelsLikeC), field(cur.FeelsLikeF),
		field(cur.Humidity),
		field(cur.WindKph), field(cur.WindDir),
		field(cur.PressureMb),
	)
	return err
}

func field(v *models.Value) string {
	if !v.Valid() {
		return notAvailable
	}
	return v.String()
}
