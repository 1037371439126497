// Package scope defines the typed tenant/visibility filter applied to every
// retrieval query. Store adapters translate it into their native query
// language; no layer assembles filter strings from caller input directly.
package scope

import (
	"errors"
	"fmt"
)

// MaxDocumentIDs bounds the explicit document allow-list.
const MaxDocumentIDs = 64

// Filter restricts a search to a tenant and optional narrower scopes.
// UserID is mandatory. Dimensions, when set, excludes chunks embedded with a
// different vector dimensionality instead of coercing them.
type Filter struct {
	userID      string
	companyID   string
	debateID    string
	documentIDs []string
	dimensions  int
}

// New validates and creates a scope Filter.
func New(userID string, opts ...Option) (Filter, error) {
	if userID == "" {
		return Filter{}, errors.New("user id is required")
	}
	f := Filter{userID: userID}
	for _, o := range opts {
		o(&f)
	}
	if len(f.documentIDs) > MaxDocumentIDs {
		return Filter{}, fmt.Errorf("too many document ids (max %d)", MaxDocumentIDs)
	}
	if f.dimensions < 0 {
		return Filter{}, fmt.Errorf("dimensions must be non-negative, got %d", f.dimensions)
	}
	return f, nil
}

// Option narrows a scope Filter.
type Option func(*Filter)

// WithCompany restricts results to one company.
func WithCompany(companyID string) Option {
	return func(f *Filter) { f.companyID = companyID }
}

// WithDebate restricts results to one debate/session.
func WithDebate(debateID string) Option {
	return func(f *Filter) { f.debateID = debateID }
}

// WithDocuments restricts results to an explicit document allow-list.
func WithDocuments(ids ...string) Option {
	return func(f *Filter) { f.documentIDs = ids }
}

// WithDimensions restricts results to chunks embedded at the given
// dimensionality.
func WithDimensions(dims int) Option {
	return func(f *Filter) { f.dimensions = dims }
}

// UserID returns the owning user identifier.
func (f Filter) UserID() string { return f.userID }

// CompanyID returns the company restriction, empty if unset.
func (f Filter) CompanyID() string { return f.companyID }

// DebateID returns the debate/session restriction, empty if unset.
func (f Filter) DebateID() string { return f.debateID }

// DocumentIDs returns the document allow-list, nil if unset.
func (f Filter) DocumentIDs() []string { return f.documentIDs }

// Dimensions returns the dimensionality restriction, 0 if unset.
func (f Filter) Dimensions() int { return f.dimensions }

// WithDims returns a copy of the filter with the dimensionality restriction
// set. Semantic search pins it to the query embedding's dimensionality.
func (f Filter) WithDims(dims int) Filter {
	f.dimensions = dims
	return f
}

// WithoutDims returns a copy of the filter with no dimensionality
// restriction. Keyword search has no vector to match against.
func (f Filter) WithoutDims() Filter {
	f.dimensions = 0
	return f
}
