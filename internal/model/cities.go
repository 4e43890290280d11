package model

// Cities is the fixed set of destinations, in menu order.
var Cities = []City{
	{ID: 1, Title: "Paris", Location: Location{Latitude: 48.85661, Longitude: 2.351499, Zoom: 13}},
	{ID: 2, Title: "Cologne", Location: Location{Latitude: 50.938361, Longitude: 6.959974, Zoom: 13}},
	{ID: 3, Title: "Brussels", Location: Location{Latitude: 50.846557, Longitude: 4.351697, Zoom: 13}},
	{ID: 4, Title: "Amsterdam", Location: Location{Latitude: 52.37454, Longitude: 4.897976, Zoom: 13}},
	{ID: 5, Title: "Hamburg", Location: Location{Latitude: 53.550341, Longitude: 10.000654, Zoom: 13}},
	{ID: 6, Title: "Dusseldorf", Location: Location{Latitude: 51.225402, Longitude: 6.776314, Zoom: 13}},
}

// DefaultCity is active until the user picks another one.
var DefaultCity = Cities[0]

// CityByID looks a city up in the known set.
func CityByID(id int) (City, bool) {
	for _, c := range Cities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}

// CityByTitle looks a city up by its title, case-sensitive.
func CityByTitle(title string) (City, bool) {
	for _, c := range Cities {
		if c.Title == title {
			return c, true
		}
	}
	return City{}, false
}

// CityTitles returns the titles of Cities in menu order.
func CityTitles() []string {
	out := make([]string, len(Cities))
	for i, c := range Cities {
		out[i] = c.Title
	}
	return out
}
