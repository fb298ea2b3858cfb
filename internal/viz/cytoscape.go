package viz

import (
	"encoding/json"
	"fmt"
)

// Pixel range a node's size in [MinSize, MaxSize] is mapped onto.
const (
	minNodePx = 4.0
	maxNodePx = 40.0
)

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data     CytoscapeNodeData `json:"data"`
	Position CytoscapePosition `json:"position"`
}

// CytoscapeNodeData contains the node data fields.
type CytoscapeNodeData struct {
	Node
	Diameter float64 `json:"diameter"`
}

// CytoscapePosition is a preset node position in model coordinates.
type CytoscapePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToCytoscapeJSON converts the page nodes to Cytoscape.js elements placed
// at their embedding coordinates times scale. The y axis is flipped so
// larger y renders higher on screen.
func (p *Page) ToCytoscapeJSON(scale float64) (string, error) {
	elements := make([]CytoscapeNode, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		elements = append(elements, CytoscapeNode{
			Data: CytoscapeNodeData{
				Node:     n,
				Diameter: nodeDiameter(n.Size),
			},
			Position: CytoscapePosition{X: n.X * scale, Y: -n.Y * scale},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// nodeDiameter maps a renderer size onto pixels.
func nodeDiameter(size float64) float64 {
	return minNodePx + size*(maxNodePx-minNodePx)
}
