// Package maplayout turns staged topics into deterministic 2-D
// coordinates for the mind-map view. It is pure presentation math: the
// rendering layer maps positions and curves to pixels however it likes.
package maplayout

import (
	"fmt"
	"math"

	"github.com/quantslearn/quantslearn/internal/topicgraph"
)

// Spacing holds the fixed layout constants, in whatever unit the
// renderer uses.
type Spacing struct {
	StageGap float64 // horizontal distance between stage columns
	TopicGap float64 // vertical distance between topics within a stage
	NodeSize float64 // node diameter, also used as the canvas margin
}

// DefaultSpacing matches the web frontend's node dimensions.
func DefaultSpacing() Spacing {
	return Spacing{StageGap: 260, TopicGap: 120, NodeSize: 72}
}

// InvalidSpacingError reports a non-positive spacing constant. Layout is
// rejected before any position is computed.
type InvalidSpacingError struct {
	Field string
	Value float64
}

func (e *InvalidSpacingError) Error() string {
	return fmt.Sprintf("invalid spacing: %s must be positive, got %g", e.Field, e.Value)
}

// Validate checks all spacing constants are positive.
func (s Spacing) Validate() error {
	if s.StageGap <= 0 {
		return &InvalidSpacingError{Field: "StageGap", Value: s.StageGap}
	}
	if s.TopicGap <= 0 {
		return &InvalidSpacingError{Field: "TopicGap", Value: s.TopicGap}
	}
	if s.NodeSize <= 0 {
		return &InvalidSpacingError{Field: "NodeSize", Value: s.NodeSize}
	}
	return nil
}

// Position is a topic's node center on the staged grid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the canvas extent the renderer should allocate.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the computed position map plus the overall canvas bounds.
type Layout struct {
	Positions map[string]Position
	Bounds    Bounds
	spacing   Spacing
}

// Compute assigns grid coordinates to every staged topic: stages become
// columns left to right, topics within a stage stack top to bottom.
// Identical inputs always produce identical output.
func Compute(stages []topicgraph.Stage, spacing Spacing) (*Layout, error) {
	if err := spacing.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Positions: make(map[string]Position),
		spacing:   spacing,
	}

	var maxX, maxY float64
	for _, stage := range stages {
		x := float64(stage.Index)*spacing.StageGap + spacing.NodeSize
		for i, topic := range stage.Topics {
			y := float64(i)*spacing.TopicGap + spacing.NodeSize
			l.Positions[topic.ID] = Position{X: x, Y: y}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if len(l.Positions) > 0 {
		l.Bounds = Bounds{
			Width:  maxX + spacing.NodeSize,
			Height: maxY + spacing.NodeSize,
		}
	}
	return l, nil
}

// Curve is a cubic bezier from a prerequisite node to its dependent,
// with an arrowhead angle at the target end.
type Curve struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Control1 Position `json:"control1"`
	Control2 Position `json:"control2"`
	// ArrowAngle is the tangent direction at the target endpoint in
	// radians, so the arrowhead always points into the target node.
	ArrowAngle float64 `json:"arrow_angle"`
}

// EdgeCurve computes the dependency-arrow curve between two positioned
// nodes. Endpoints are pulled in by half a node so the curve runs from
// the source's right edge to the target's left edge. Control points sit
// at one-third and two-thirds of the horizontal span, each at its
// endpoint's height, which gives the S-shaped sweep the mind map draws
// between stage columns.
func EdgeCurve(from, to Position, nodeSize float64) Curve {
	from = Position{X: from.X + nodeSize/2, Y: from.Y}
	to = Position{X: to.X - nodeSize/2, Y: to.Y}

	dx := to.X - from.X
	c1 := Position{X: from.X + dx/3, Y: from.Y}
	c2 := Position{X: from.X + 2*dx/3, Y: to.Y}

	// Tangent of a cubic bezier at t=1 is the segment from the last
	// control point to the endpoint.
	angle := math.Atan2(to.Y-c2.Y, to.X-c2.X)

	return Curve{
		From:       from,
		To:         to,
		Control1:   c1,
		Control2:   c2,
		ArrowAngle: angle,
	}
}

// Curves computes one curve per dependency edge in the graph, keyed by
// nothing: the slice order follows registry input order of the dependent
// topic, then its declared prerequisite order.
func Curves(g *topicgraph.Graph, l *Layout) []Curve {
	edges := Edges(g, l)
	curves := make([]Curve, len(edges))
	for i, e := range edges {
		curves[i] = e.Curve
	}
	return curves
}

// Edge ties a dependency curve to its topic endpoints.
type Edge struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Curve  Curve  `json:"curve"`
}

// Edges computes one identified curve per dependency edge, in registry
// order of the dependent topic, then its declared prerequisite order.
func Edges(g *topicgraph.Graph, l *Layout) []Edge {
	var edges []Edge
	for _, topic := range g.Topics() {
		toPos, ok := l.Positions[topic.ID]
		if !ok {
			continue
		}
		for _, prereq := range g.Prerequisites(topic.ID) {
			fromPos, ok := l.Positions[prereq.ID]
			if !ok {
				continue
			}
			edges = append(edges, Edge{
				FromID: prereq.ID,
				ToID:   topic.ID,
				Curve:  EdgeCurve(fromPos, toPos, l.spacing.NodeSize),
			})
		}
	}
	return edges
}
