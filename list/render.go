package list

import (
	"encoding/json"
	"fmt"

	"github.com/funvibe/persist/internal/config"
	"github.com/funvibe/persist/internal/pcore"
)

// String renders l using the persistent-list delimiters, truncating with
// an ellipsis at roughly RenderWidth characters. Lists past
// RenderCountThreshold render as a bare count instead of a preview.
func (l *List) String() string {
	n := l.Len()
	if n > config.RenderCountThreshold {
		return config.ListOpenP + pcore.CountSuffix(n, "items") + config.ListCloseP
	}
	return pcore.Render(config.ListOpenP, config.ListCloseP, n, func(i int) string {
		v, _ := l.Get(i)
		return fmt.Sprintf("%v", v)
	}, ", ", config.RenderWidth)
}

// String renders t using the transient-list delimiters.
func (t *Transient) String() string {
	n := t.Len()
	if n > config.RenderCountThreshold {
		return config.ListOpenT + pcore.CountSuffix(n, "items") + config.ListCloseT
	}
	return pcore.Render(config.ListOpenT, config.ListCloseT, n, func(i int) string {
		v, _ := t.Get(i)
		return fmt.Sprintf("%v", v)
	}, ", ", config.RenderWidth)
}

// MarshalJSON serializes the list as a JSON array.
func (l *List) MarshalJSON() ([]byte, error) {
	out := make([]any, l.Len())
	for i := range out {
		out[i], _ = l.Get(i)
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a list from a JSON array.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = *Of(raw...)
	return nil
}
