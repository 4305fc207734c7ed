package diag

import (
	"github.com/tidwall/sjson"
)

// entry is the `{ "message", "start", "end", "file_id" }` shape spec.md §6
// names for each element of the JSON document's "errors"/"warnings"
// arrays.
type entry struct {
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	FileID  int    `json:"file_id"`
}

// RenderJSON builds the `{ "errors": [...], "warnings": [] }` document of
// spec.md §6 by appending one entry at a time with sjson.Set, rather than
// building a Go struct and marshaling it wholesale — the same
// incremental-construction style the teacher's bytecode serializer uses
// for its own on-disk format (build field by field, never hold the whole
// document as a typed value).
func RenderJSON(diags []Diagnostic) (string, error) {
	doc := `{"errors":[],"warnings":[]}`
	var err error
	for _, d := range diags {
		label := primaryOf(d)
		e := entry{Message: d.Message, Start: label.Span.Start, End: label.Span.End, FileID: int(label.File)}
		path := "errors.-1"
		if d.Severity == SeverityWarning {
			path = "warnings.-1"
		}
		doc, err = sjson.Set(doc, path, e)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
