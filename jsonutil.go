package orionkmer

import (
	"encoding/json"
	"io"
)

// WriteJSON marshals v as indented JSON followed by a trailing newline.
// Compare and Classify both emit a single JSON document this way (§6); a
// bespoke JSON library is not warranted for one object per invocation, so
// this stays on encoding/json (see DESIGN.md).
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
