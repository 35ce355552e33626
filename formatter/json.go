package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a builder for rendering station boards.
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes boards to indented JSON.
func (rb *responseBuilder) BuildJSON(sb StationBoards) []byte {
	b, _ := json.MarshalIndent(sb, "", "  ")
	return b
}

// BuildText renders boards as an aligned departure listing.
func (rb *responseBuilder) BuildText(sb StationBoards) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s)\n", sb.StationName, sb.StationID)
	if len(sb.Boards) == 0 {
		buf.WriteString("  no arrivals\n")
		return buf.Bytes()
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, b := range sb.Boards {
		heading := b.LineName
		if b.Direction != "" {
			heading += " - " + b.Direction
		}
		fmt.Fprintf(tw, "  %s\n", heading)
		for _, a := range b.Arrivals {
			fmt.Fprintf(tw, "    %s\t%s\t%s\n", minutes(a.Minutes), a.Destination, a.Platform)
		}
	}
	_ = tw.Flush()
	return buf.Bytes()
}

func minutes(n int) string {
	switch n {
	case 0:
		return "due"
	case 1:
		return "1 min"
	default:
		return fmt.Sprintf("%d mins", n)
	}
}
