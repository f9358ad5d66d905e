// Package enrichment derives a "department" field for collected documents
// from the leading department code held in a configured field.
package enrichment

import (
	"errors"
	"regexp"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// firstCodePattern captures the leftmost <...> token. Nested or empty
// brackets do not match.
var firstCodePattern = regexp.MustCompile(`^(<[^<>]+>)`)

// DepartmentEnricher adds a department field to documents.
type DepartmentEnricher struct {
	keyName string
}

// NewDepartmentEnricher builds an enricher reading codes from keyName.
func NewDepartmentEnricher(keyName string) (*DepartmentEnricher, error) {
	if keyName == "" {
		return nil, errors.New("enrichment: key name must not be empty")
	}
	return &DepartmentEnricher{keyName: keyName}, nil
}

// KeyName returns the field codes are read from.
func (e *DepartmentEnricher) KeyName() string {
	return e.keyName
}

// Enrich returns enriched copies of docs in input order. The first contract
// violation stops processing and is returned as a *DocumentError; the input
// documents are never modified.
func (e *DepartmentEnricher) Enrich(docs []domain.Document) ([]domain.Document, error) {
	out := make([]domain.Document, len(docs))
	for i, doc := range docs {
		enriched, err := e.EnrichDocument(doc)
		if err != nil {
			var docErr *DocumentError
			if errors.As(err, &docErr) {
				docErr.Index = i
			}
			return nil, err
		}
		out[i] = enriched
	}
	return out, nil
}

// EnrichValid enriches every document that satisfies the input contract and
// reports the others instead of stopping. Enriched documents keep their
// relative order; each rejection carries its batch index.
func (e *DepartmentEnricher) EnrichValid(docs []domain.Document) ([]domain.Document, []*DocumentError) {
	out := make([]domain.Document, 0, len(docs))
	var rejected []*DocumentError
	for i, doc := range docs {
		enriched, err := e.EnrichDocument(doc)
		if err != nil {
			docErr := err.(*DocumentError)
			docErr.Index = i
			rejected = append(rejected, docErr)
			continue
		}
		out = append(out, enriched)
	}
	return out, rejected
}

// EnrichDocument enriches a single document. Index on a returned
// *DocumentError is always zero.
func (e *DepartmentEnricher) EnrichDocument(doc domain.Document) (domain.Document, error) {
	raw, ok := doc[e.keyName]
	if !ok {
		return nil, &DocumentError{Key: e.keyName, Err: ErrPrecondition}
	}
	code, err := FirstCode(raw)
	if err != nil {
		return nil, &DocumentError{Key: e.keyName, Value: raw, Err: err}
	}
	out := doc.Clone()
	out[domain.DepartmentField] = ResolveDepartment(code)
	return out, nil
}

// FirstCode extracts the leading department code from a raw field value.
func FirstCode(raw any) (domain.DepartmentCode, error) {
	s, ok := raw.(string)
	if !ok {
		return "", ErrMalformedInput
	}
	m := firstCodePattern.FindStringSubmatch(s)
	if m == nil {
		return "", ErrMalformedInput
	}
	return domain.DepartmentCode(m[1]), nil
}
