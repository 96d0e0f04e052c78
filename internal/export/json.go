package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/timeline"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Anchors    jsonAnchors    `json:"anchors"`
	Count      int            `json:"count"`
	Totals     map[string]int `json:"minutes_by_level"`
	Segments   []jsonSegment  `json:"segments"`
}

type jsonAnchors struct {
	Wake      string `json:"wake"`
	WorkStart string `json:"work_start"`
	HardStop  string `json:"hard_stop,omitempty"`
	Bedtime   string `json:"bedtime"`
}

type jsonSegment struct {
	Period   string `json:"period"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Minutes  int    `json:"minutes"`
	Duration string `json:"duration"`
	Level    string `json:"level"`
	Label    string `json:"label,omitempty"`
}

func ToJSON(day timeline.Plan, path string) error {
	raw := day.Anchors.Raw()
	rows := Rows(day)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Anchors: jsonAnchors{
			Wake:      raw.Wake,
			WorkStart: raw.WorkStart,
			HardStop:  raw.HardStop,
			Bedtime:   raw.Bedtime,
		},
		Count:  len(rows),
		Totals: make(map[string]int),
	}

	totals := day.Totals()
	for _, l := range energy.Levels {
		if m := totals[l]; m > 0 {
			export.Totals[string(l)] = m
		}
	}

	for _, r := range rows {
		export.Segments = append(export.Segments, jsonSegment{
			Period:   string(r.Period),
			Start:    r.startString(),
			End:      r.endString(),
			Minutes:  r.Minutes,
			Duration: clock.FormatSpan(r.Minutes),
			Level:    r.Level,
			Label:    r.Label,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
