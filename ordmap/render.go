package ordmap

import (
	"fmt"

	"github.com/funvibe/persist/internal/config"
	"github.com/funvibe/persist/internal/pcore"
)

// String renders t using the transient-map delimiters.
func (t *Transient) String() string {
	n := t.Len()
	if n > config.RenderCountThreshold {
		return config.MapOpenT + pcore.CountSuffix(n, "pairs") + config.MapCloseT
	}
	pairs := make([]Pair, 0, n)
	for p := range t.Items() {
		pairs = append(pairs, p)
	}
	return pcore.Render(config.MapOpenT, config.MapCloseT, len(pairs), func(i int) string {
		return fmt.Sprintf("%v: %v", pairs[i].Key, pairs[i].Value)
	}, ", ", config.RenderWidth)
}
