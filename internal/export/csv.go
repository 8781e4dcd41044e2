package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/sweep"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per recorded sample: time, then one column per
// compartment. Missing names fall back to x0, x1, ...
func WriteCSV(w io.Writer, names []string, result *dynamo.Result) error {
	cw := csv.NewWriter(w)

	if len(result.States) == 0 {
		cw.Flush()
		return cw.Error()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		if i < len(names) {
			header = append(header, names[i])
		} else {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(result.Times[i]))
		for _, val := range result.States[i] {
			row = append(row, formatFloat(val))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSweepCSV writes one row per temperature with the attack rates, the
// final densities and the mean littoral diet share.
func WriteSweepCSV(w io.Writer, names []string, points []sweep.Point) error {
	cw := csv.NewWriter(w)

	header := []string{"T", "a_litt", "a_pel"}
	header = append(header, names...)
	header = append(header, "littoral_diet", "steps", "error")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, pt := range points {
		row := []string{formatFloat(pt.T), formatFloat(pt.ALitt), formatFloat(pt.APel)}
		for i := range names {
			if i < len(pt.Final) {
				row = append(row, formatFloat(pt.Final[i]))
			} else {
				row = append(row, "")
			}
		}
		errText := ""
		if pt.Err != nil {
			errText = pt.Err.Error()
		}
		row = append(row, formatFloat(pt.LittoralDiet), strconv.Itoa(pt.Steps), errText)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
