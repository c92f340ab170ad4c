// Package e2e drives the full HTTP API against a realistic document corpus.
package e2e

import (
	"fmt"
	"strings"
)

// Document is one corpus entry.
type Document struct {
	ID      string
	Title   string
	Content string
}

// BuildCorpus returns a mixed corpus: hand-written prose of different
// lengths plus one generated long document.
func BuildCorpus() []Document {
	return []Document{
		{
			ID:    "glacier",
			Title: "Retreat of the Valley Glacier",
			Content: `The glacier has retreated nearly two kilometers since the first survey in 1911.
Photographs from that expedition show ice walls sixty meters high at the terminus.
Today a gravel plain stretches where the ice once stood.

Meltwater streams braid across the plain every afternoon in summer.
Researchers measure the flow at three gauging stations along the valley.
Their records show the melt season starting eleven days earlier than it did in 1980.

Downstream farms depend on that meltwater through the dry months.
Water managers now model the runoff decades ahead.
Every model run shows the peak arriving sooner and shrinking.`,
		},
		{
			ID:    "press",
			Title: "The Letterpress Shop",
			Content: `The letterpress shop on Grove Street still sets type by hand.
Drawers of lead letters line the back wall from floor to ceiling.
The owner can pull a clean proof in under four minutes.

Customers order wedding invitations and broadsides and business cards.
Each job runs on a press built before the Second World War.
The deep bite of type into cotton paper cannot be faked digitally.

Apprentices come from the art school across the river.
They learn to read backwards and to mind their fingers.
Most stay long after their course credit is earned.`,
		},
		{
			ID:      "manual",
			Title:   "Pump Station Manual",
			Content: generated(60),
		},
	}
}

// generated builds a long procedural document with n numbered steps.
func generated(n int) string {
	actions := []string{
		"Inspect the intake screen for debris and clear any blockage",
		"Record the suction pressure on the daily log sheet",
		"Verify the impeller clearance against the commissioning value",
		"Drain the condensate trap below the discharge manifold",
		"Rotate the standby unit into service for one full shift",
	}
	var b strings.Builder
	b.WriteString("Operating procedure for the riverside pump station.\n\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Step %d. %s before continuing to the next checkpoint. ", i+1, actions[i%len(actions)])
		if i%4 == 3 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
