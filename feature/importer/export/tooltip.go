package export

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	// TooltipMapFile maps minecraft ids to the names shown in item tooltips.
	TooltipMapFile = "tooltipMap.json"
	// LookupMapFile is the inverse of the tooltip map and is skipped.
	LookupMapFile = "lookupMap.json"
)

// TooltipMap is the content of tooltipMap.json.
type TooltipMap struct {
	Map map[string]string `json:"map"`
}

// DecodeTooltipMap reads a tooltip map document.
// Exporter versions differ: older ones nest the entries under "map", newer ones write a flat object.
func DecodeTooltipMap(r io.Reader) (*TooltipMap, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode tooltip map: %w", err)
	}

	if inner, ok := raw["map"]; ok && len(raw) == 1 {
		var nested map[string]string
		if err := json.Unmarshal(inner, &nested); err == nil {
			return &TooltipMap{Map: nested}, nil
		}
	}

	flat := make(map[string]string, len(raw))
	for id, v := range raw {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return nil, fmt.Errorf("failed to decode tooltip for %q: %w", id, err)
		}
		flat[id] = name
	}
	return &TooltipMap{Map: flat}, nil
}
