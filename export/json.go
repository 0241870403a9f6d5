package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/loftworks/birail"
)

// Profile is the JSON form of one placed cross-section.
type Profile struct {
	Cyclic bool         `json:"cyclic"`
	Points [][3]float64 `json:"points"`
}

// ProfileNetwork is the JSON form of the cross-sections of a loft, in
// sweep order.
type ProfileNetwork struct {
	Cyclic   bool      `json:"cyclic"`
	Profiles []Profile `json:"profiles"`
}

// NewProfileNetwork converts curves into their JSON form. cyclic records
// whether the sweep closes on itself.
func NewProfileNetwork(curves []*birail.Curve, cyclic bool) ProfileNetwork {
	network := ProfileNetwork{Cyclic: cyclic, Profiles: make([]Profile, len(curves))}
	for i, c := range curves {
		pts := c.Points()
		p := Profile{Cyclic: c.Cyclic(), Points: make([][3]float64, len(pts))}
		for j := range pts {
			p.Points[j] = [3]float64(pts[j])
		}
		network.Profiles[i] = p
	}

	return network
}

// WriteProfilesJSON writes curves as an indented ProfileNetwork document.
func WriteProfilesJSON(w io.Writer, curves []*birail.Curve, cyclic bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewProfileNetwork(curves, cyclic)); err != nil {
		return fmt.Errorf("write profiles json: %w", err)
	}
	return nil
}
