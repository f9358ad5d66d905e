package domain

// DepartmentField is the key written onto every enriched document.
const DepartmentField = "department"

// Document is a single record flowing from a collector to storage.
type Document map[string]any

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Department returns the enriched department value, if present.
func (d Document) Department() (string, bool) {
	v, ok := d[DepartmentField].(string)
	return v, ok
}
