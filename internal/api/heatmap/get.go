package heatmap

import (
	"net/http"
	"time"
	"untrashapi/internal/api"
)

type heatPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// Get returns map intensity points: open trash reports push heat up, recently
// cleaned areas pull it down until their window expires.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	locations, err := h.Store.ReportedLocations(ctx, 1000)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}
	areas, err := h.Store.UnexpiredAreas(ctx, time.Now().UTC(), 1000)
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	points := make([]heatPoint, 0, len(locations)+len(areas))
	for _, loc := range locations {
		points = append(points, heatPoint{Lat: loc.Lat, Lng: loc.Lng, Intensity: 1.0})
	}
	for _, area := range areas {
		points = append(points, heatPoint{
			Lat:       area.CenterLocation.Lat,
			Lng:       area.CenterLocation.Lng,
			Intensity: -0.5,
		})
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		Points []heatPoint `json:"points"`
	}{Points: points}
	h.Res(resParams)

}
