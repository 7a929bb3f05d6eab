package element

import (
	"encoding/json"

	"layout-maker/pkg/geometry"
)

// placedJSON mirrors Placed with a nullable anchor, so records saved before
// anchors existed load with the centered default instead of (0,0).
type placedJSON struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Label    string            `json:"label,omitempty"`
	Position geometry.Point2D  `json:"position"`
	Rotation float64           `json:"rotation,omitempty"`
	Anchor   *geometry.Point2D `json:"anchor,omitempty"`
	Dims     Dimensions        `json:"dims"`
}

// UnmarshalJSON decodes a placed element, defaulting a missing anchor to the
// element center.
func (p *Placed) UnmarshalJSON(data []byte) error {
	var raw placedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.Type = raw.Type
	p.Label = raw.Label
	p.Position = raw.Position
	p.Rotation = raw.Rotation
	p.Dims = raw.Dims
	if raw.Anchor != nil {
		p.Anchor = *raw.Anchor
	} else {
		p.Anchor = CenterAnchor
	}
	return nil
}
