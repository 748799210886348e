package service

import "errors"

// The error kinds callers branch on. Services wrap these with context via
// fmt.Errorf and %w; test with errors.Is.
var (
	// ErrAddressInput means the normalizer could not parse the input, or
	// the bounded state-rewrite retry produced nothing resolvable.
	ErrAddressInput = errors.New("address could not be parsed")

	// ErrAddressNotFound means the address normalized cleanly but the
	// geocoder found no match for it.
	ErrAddressNotFound = errors.New("no address found that matches the input")

	// ErrIntersectionInput means the input holds no intersection marker,
	// or one of its road strings did not resolve to a street name.
	ErrIntersectionInput = errors.New("intersection could not be parsed")

	// ErrIntersectionNotFound means every query fallback step came back
	// empty.
	ErrIntersectionNotFound = errors.New("no intersection of those streets was found")

	// ErrNoResults means a search exhausted both the intersection and the
	// address paths.
	ErrNoResults = errors.New("no matching addresses or intersections were found")
)
