package document

import (
	"github.com/google/uuid"
)

// SourceKind tags the type of document a SourceRef points at
type SourceKind string

const (
	SourceKindNone  SourceKind = ""      // Document created by hand
	SourceKindQuote SourceKind = "quote" // Sale generated from an accepted quote
	SourceKindSale  SourceKind = "sale"  // Purchase order generated from a sale
)

// SourceRef records which document generated this one. Set once at creation
// and never changed afterwards; the zero value means no provenance.
type SourceRef struct {
	Kind SourceKind `gorm:"column:source_kind;type:varchar(10)" json:"kind,omitempty"`
	ID   *uuid.UUID `gorm:"column:source_id;type:uuid;index" json:"id,omitempty"`
}

// NoSource returns an empty provenance link
func NoSource() SourceRef {
	return SourceRef{Kind: SourceKindNone}
}

// FromQuote returns a provenance link to a quote
func FromQuote(quoteID uuid.UUID) SourceRef {
	return SourceRef{Kind: SourceKindQuote, ID: &quoteID}
}

// FromSale returns a provenance link to a sale
func FromSale(saleID uuid.UUID) SourceRef {
	return SourceRef{Kind: SourceKindSale, ID: &saleID}
}

// IsSet reports whether the reference points at a source document
func (s SourceRef) IsSet() bool {
	return s.Kind != SourceKindNone && s.ID != nil
}
