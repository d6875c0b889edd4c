package motions

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrNotConnected indicates that no chain of known poses links two
// frames.
var ErrNotConnected = errors.New("frames not connected")

// ConnectedFramesInspector answers relative pose queries over the
// graph whose nodes are frames and whose edges are the known poses of
// a PosesSpec.
type ConnectedFramesInspector struct {
	g      *simple.UndirectedGraph
	ids    map[Frame]int64
	frames []Frame
	// known maps (reference, target) to the first matching pose.
	known map[Pose]PoseSpec
}

// NewConnectedFramesInspector indexes the poses of ps.
func NewConnectedFramesInspector(ps PosesSpec) *ConnectedFramesInspector {
	c := &ConnectedFramesInspector{
		g:     simple.NewUndirectedGraph(),
		ids:   make(map[Frame]int64),
		known: make(map[Pose]PoseSpec),
	}
	for _, p := range ps.Poses {
		u, v := c.node(p.Pose.Reference), c.node(p.Pose.Target)
		if _, dup := c.known[p.Pose]; !dup {
			c.known[p.Pose] = p
		}
		if u != v {
			c.g.SetEdge(c.g.NewEdge(simple.Node(u), simple.Node(v)))
		}
	}
	return c
}

func (c *ConnectedFramesInspector) node(f Frame) int64 {
	if id, ok := c.ids[f]; ok {
		return id
	}
	id := int64(len(c.frames))
	c.ids[f] = id
	c.frames = append(c.frames, f)
	c.g.AddNode(simple.Node(id))
	return id
}

// Frames returns every frame mentioned by the poses, in order of
// first appearance.
func (c *ConnectedFramesInspector) Frames() []Frame {
	return append([]Frame(nil), c.frames...)
}

// path returns the frames along a shortest chain of poses from
// reference to target.
func (c *ConnectedFramesInspector) path(target, reference Frame) ([]Frame, error) {
	from, ok := c.ids[reference]
	to, ok2 := c.ids[target]
	if !ok || !ok2 {
		return nil, fmt.Errorf("%w: %s to %s: unknown frame", ErrNotConnected, reference, target)
	}
	if from == to {
		return []Frame{reference}, nil
	}
	nodes, _ := path.DijkstraFrom(simple.Node(from), c.g).To(to)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNotConnected, reference, target)
	}
	fs := make([]Frame, len(nodes))
	for i, n := range nodes {
		fs[i] = c.frames[n.ID()]
	}
	return fs, nil
}

// HasRelativePose reports whether the pose of target relative to
// reference can be determined.
func (c *ConnectedFramesInspector) HasRelativePose(target, reference Frame) bool {
	_, err := c.path(target, reference)
	return err == nil
}

// PoseSpec returns the specification of the pose of target relative
// to reference, composing the known poses along a path between them.
// Poses traversed from target to reference contribute their inverse
// motion.
func (c *ConnectedFramesInspector) PoseSpec(target, reference Frame) (PoseSpec, error) {
	fs, err := c.path(target, reference)
	if err != nil {
		return PoseSpec{}, err
	}
	var m Motion
	for i := 1; i < len(fs); i++ {
		hop := Pose{Reference: fs[i-1], Target: fs[i]}
		if p, ok := c.known[hop]; ok {
			m = m.Then(p.Motion)
			continue
		}
		back, ok := c.known[Pose{Reference: fs[i], Target: fs[i-1]}]
		if !ok {
			return PoseSpec{}, fmt.Errorf("%w: no pose for %v", ErrNotConnected, hop)
		}
		m = m.Then(back.Motion.Inverse())
	}
	return PoseSpec{Pose: Pose{Reference: reference, Target: target}, Motion: m}, nil
}
