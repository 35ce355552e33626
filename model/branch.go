package model

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
)

// Branch is one continuous path segment of a line's route. Its points are
// used for drawing and need not coincide with stations.
type Branch struct {
	points []geo.Coordinate
}

// NewBranch returns a branch over pts. The slice is copied.
func NewBranch(pts []geo.Coordinate) Branch {
	cp := make([]geo.Coordinate, len(pts))
	copy(cp, pts)
	return Branch{points: cp}
}

// ParseBranch decodes a route path string into a branch.
func ParseBranch(raw string) (Branch, error) {
	pts, err := geo.ParsePath(raw)
	if err != nil {
		return Branch{}, err
	}
	return Branch{points: pts}, nil
}

// Points returns a copy of the branch's points in path order.
func (b Branch) Points() []geo.Coordinate {
	out := make([]geo.Coordinate, len(b.points))
	copy(out, b.points)
	return out
}

func (b Branch) Len() int { return len(b.points) }

// Equal reports whether both branches have the same ordered points.
func (b Branch) Equal(other Branch) bool {
	if len(b.points) != len(other.points) {
		return false
	}
	for i := range b.points {
		if b.points[i] != other.points[i] {
			return false
		}
	}
	return true
}

// key is a lossless encoding of the point sequence for set membership.
func (b Branch) key() string {
	var sb strings.Builder
	for _, p := range b.points {
		sb.WriteString(strconv.FormatFloat(p.Lat, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Lon, 'g', -1, 64))
		sb.WriteByte(';')
	}
	return sb.String()
}
