package pack

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
)

// NewRegistry registers builtins followed by the checks of every pack in
// load, in order.
func NewRegistry(fs afero.Fs, builtins []check.Check, load []string) (*check.Registry, error) {
	loaded, err := Load(fs, load)
	if err != nil {
		return nil, err
	}
	checks := make([]check.Check, 0, len(builtins)+len(loaded))
	checks = append(checks, builtins...)
	checks = append(checks, loaded...)
	reg, err := check.NewRegistry(checks...)
	if err != nil {
		return nil, fmt.Errorf("register checks: %w", err)
	}
	return reg, nil
}
