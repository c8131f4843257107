package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// Load reads a catalog file from disk. See Parse.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: "failed to read catalog", Path: path, Err: err}
	}

	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Path == "" {
			le.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Parse builds a catalog from a JSON document.
//
// The document is first unified with #Catalog from schema.cue so that shape
// errors (missing fields, ratings outside [0,5], negative prices, a top-level
// object instead of an array) are reported with CUE's positions, then
// decoded and validated by New.
func Parse(data []byte) (*Catalog, error) {
	products, err := decode(data)
	if err != nil {
		return nil, err
	}
	return New(products)
}

func decode(data []byte) ([]Product, error) {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	doc := cctx.CompileBytes(data, cue.Filename("catalog.json"))
	if err := doc.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: "catalog is not valid JSON", Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeSchema,
			Message: cueerrors.Details(err, nil),
			Err:     err,
		}
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: "failed to decode products", Err: err}
	}
	return products, nil
}
