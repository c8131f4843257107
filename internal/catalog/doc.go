// Package catalog holds the immutable product catalog and the view derivation
// engine that turns it into the ordered list shown to the user.
//
// # Derivation
//
// Derive is a pure function of (products, favorites, filter). It applies, in
// order:
//   - minimum rating (rating >= MinRating)
//   - category (exact match unless the category is "All")
//   - favorites-only
//   - stable price sort, ascending or descending
//   - favorite annotation
//
// Ties on price keep catalog order in both directions. The result is a fresh
// slice on every call and is never an error: inputs that match nothing yield
// an empty slice.
//
// # Loading
//
// Catalog files are JSON arrays of products. Load checks them against the
// embedded CUE schema (schema.cue) before decoding, then New validates each
// record and rejects duplicate IDs.
package catalog
