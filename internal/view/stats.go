package view

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/and161185/six-cities/internal/model"
)

// CityStat summarizes the offers of one city.
type CityStat struct {
	City        string  `json:"city"`
	Offers      int     `json:"offers"`
	MeanPrice   float64 `json:"mean_price"`
	MedianPrice float64 `json:"median_price"`
	MeanRating  float64 `json:"mean_rating"`
}

// PriceStats groups offers by city, in the order of model.Cities. Cities without
// offers are skipped.
func PriceStats(offers model.Offers) []CityStat {
	prices := map[string][]float64{}
	ratings := map[string][]float64{}
	for _, o := range offers {
		prices[o.City.Title] = append(prices[o.City.Title], float64(o.Price))
		ratings[o.City.Title] = append(ratings[o.City.Title], o.Rating)
	}

	out := make([]CityStat, 0, len(prices))
	for _, c := range model.Cities {
		p := prices[c.Title]
		if len(p) == 0 {
			continue
		}
		sort.Float64s(p)
		out = append(out, CityStat{
			City:        c.Title,
			Offers:      len(p),
			MeanPrice:   stat.Mean(p, nil),
			MedianPrice: stat.Quantile(0.5, stat.Empirical, p, nil),
			MeanRating:  stat.Mean(ratings[c.Title], nil),
		})
	}
	return out
}
