package layouts

import "cookline/internal/domain/layout"

type ListResponse struct {
	Layouts []string `json:"layouts"`
}

type GetRequest struct {
	Name string `json:"name"`
}

// Detail is the layout definition plus the geometry it compiles to, so a
// client can size its tensors before creating a batch.
type Detail struct {
	Name            string         `json:"name"`
	Grid            string         `json:"grid"`
	Horizon         int            `json:"horizon"`
	Orders          []layout.Order `json:"orders"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	NumAgents       int            `json:"num_agents"`
	Channels        int            `json:"channels"`
	ObservationSize int            `json:"observation_size"`
	NumActions      int            `json:"num_actions"`
}
