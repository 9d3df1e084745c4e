package telemetry

import (
	"fmt"
	"io"
	"time"
)

// formatTimingTree outputs the timing tree in a hierarchical format.
// Example output:
//
//	balance.journal (3 transactions): 125ms
//	├─ balance.pass1: 85ms
//	└─ balance.pass2: 40ms
func formatTimingTree(w io.Writer, root *timerNode) {
	duration := root.end.Sub(root.start)
	fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(duration))

	for i, child := range root.children {
		isLast := i == len(root.children)-1
		formatNode(w, child, "", isLast)
	}
}

// formatNode recursively prints a node and its children with tree-drawing prefixes.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool) {
	connector := "├─ "
	childPrefix := prefix + "│  "
	if isLast {
		connector = "└─ "
		childPrefix = prefix + "   "
	}

	duration := node.end.Sub(node.start)
	fmt.Fprintf(w, "%s%s%s: %s\n", prefix, connector, node.name, formatDuration(duration))

	for i, child := range node.children {
		formatNode(w, child, childPrefix, i == len(node.children)-1)
	}
}

// formatDuration renders a duration rounded to microsecond precision for readability.
func formatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return d.String()
	}
	return d.Round(time.Microsecond).String()
}
