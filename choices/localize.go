package choices

import (
	"strings"

	"golang.org/x/text/message"
)

// Localized returns the call form with every label looked up in the catalog
// of p. Labels without a translation are returned unchanged.
func (c *Choices[ID]) Localized(p *message.Printer) []Choice[ID] {
	out := c.Choices()
	for i := range out {
		label := out[i].Label
		out[i].Label = p.Sprintf(message.Key(label, strings.ReplaceAll(label, "%", "%%")))
	}
	return out
}
