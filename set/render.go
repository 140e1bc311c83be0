package set

import (
	"fmt"

	"github.com/funvibe/persist/internal/config"
	"github.com/funvibe/persist/internal/pcore"
)

// String renders t using the transient-set delimiters.
func (t *Transient) String() string {
	n := t.Len()
	if n > config.RenderCountThreshold {
		return config.SetOpenT + pcore.CountSuffix(n, "items") + config.SetCloseT
	}
	vals := make([]any, 0, n)
	for v := range t.Iter() {
		vals = append(vals, v)
	}
	return pcore.Render(config.SetOpenT, config.SetCloseT, len(vals), func(i int) string {
		return fmt.Sprintf("%v", vals[i])
	}, ", ", config.RenderWidth)
}
