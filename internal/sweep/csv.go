package sweep

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the grid in long form, one row per cell:
// azimuth, inclination, value. Breakout grids carry the two wall extrema
// as extra columns.
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"azimuth", "inclination", string(g.Mode)}
	breakout := g.MaxTangential != nil
	if breakout {
		header = append(header, "max_tangential", "min_tangential")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for ii, inc := range g.Inclinations {
		for ia, az := range g.Azimuths {
			rec := []string{f(az), f(inc), f(g.Values[ii][ia])}
			if breakout {
				rec = append(rec, f(g.MaxTangential[ii][ia]), f(g.MinTangential[ii][ia]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
