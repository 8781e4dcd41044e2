package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/foodweb"
	"github.com/san-kum/foodweb/internal/sweep"
)

type RunData struct {
	Integrator string             `json:"integrator"`
	Params     foodweb.Params     `json:"params"`
	Names      []string           `json:"names"`
	Steps      int                `json:"steps"`
	Rejected   int                `json:"rejected"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func WriteJSON(w io.Writer, integrator string, params foodweb.Params, result *dynamo.Result) error {
	data := RunData{
		Integrator: integrator,
		Params:     params,
		Names:      foodweb.StateNames(),
		Steps:      result.Stats.Steps,
		Rejected:   result.Stats.Rejected,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

type SweepRow struct {
	T            float64   `json:"T"`
	ALitt        float64   `json:"a_litt"`
	APel         float64   `json:"a_pel"`
	Final        []float64 `json:"final"`
	LittoralDiet float64   `json:"littoral_diet"`
	Steps        int       `json:"steps"`
	Error        string    `json:"error,omitempty"`
}

func WriteSweepJSON(w io.Writer, points []sweep.Point) error {
	rows := make([]SweepRow, len(points))
	for i, pt := range points {
		rows[i] = SweepRow{
			T:            pt.T,
			ALitt:        pt.ALitt,
			APel:         pt.APel,
			Final:        pt.Final,
			LittoralDiet: pt.LittoralDiet,
			Steps:        pt.Steps,
		}
		if pt.Err != nil {
			rows[i].Error = pt.Err.Error()
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
