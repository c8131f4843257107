package cli

import (
	"errors"

	"github.com/PraveshMalvi/buyora/internal/catalog"
)

// loadCatalog loads a catalog file, reporting failures through f.
// Unreadable files are command errors; bad content is a check failure.
func loadCatalog(f *OutputFormatter, path string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(path)
	if err == nil {
		f.VerboseLog("Loaded %d product(s) from %s", cat.Len(), path)
		return cat, nil
	}

	var le *catalog.LoadError
	if !errors.As(err, &le) {
		_ = f.Error(string(catalog.ErrCodeRead), err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	var details any
	if le.Err != nil {
		details = le.Err.Error()
	}
	_ = f.Error(string(le.Code), le.Message, details)

	code := ExitFailure
	if le.Code == catalog.ErrCodeRead {
		code = ExitCommandError
	}
	return nil, WrapExitError(code, "failed to load catalog", err)
}
