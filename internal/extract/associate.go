package extract

import (
	"math"
	"strings"

	"github.com/goliatone/go-xmlform/pkg/tree"
)

// ProximityThreshold is the exclusive per-axis distance under which a text
// node is considered next to a rect.
const ProximityThreshold = 50

// Associate picks a label for rect from texts. The first text in document
// order that either carries an id containing the rect's id (when the rect has
// an id attribute, even an empty one), or sits closer
// than ProximityThreshold on both axes, wins; its innermost content is the
// label. No match yields "".
//
// Coordinates are read as leading base-10 integers with missing values taken
// as 0, so two nodes without coordinates are considered adjacent.
func Associate(rect *tree.Node, texts []*tree.Node) string {
	rectID, hasID := rect.Attr(idAttribute)
	rx, ry := leadingInt(rect, "x"), leadingInt(rect, "y")

	for _, text := range texts {
		if text == nil {
			continue
		}
		if (hasID && identifierMatch(text, rectID)) || proximityMatch(text, rx, ry) {
			return tree.Content(text)
		}
	}
	return ""
}

// identifierMatch reports whether text carries an id containing rectID. An
// empty rectID matches any text that has an id.
func identifierMatch(text *tree.Node, rectID string) bool {
	textID, ok := text.Attr(idAttribute)
	return ok && strings.Contains(textID, rectID)
}

func proximityMatch(text *tree.Node, rx, ry int64) bool {
	tx, ty := leadingInt(text, "x"), leadingInt(text, "y")
	return distance(tx, rx) < ProximityThreshold && distance(ty, ry) < ProximityThreshold
}

func distance(a, b int64) float64 {
	return math.Abs(float64(a) - float64(b))
}
