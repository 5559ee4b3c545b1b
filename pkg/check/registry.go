package check

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{3,4}$`)

const (
	minCode = 100
	maxCode = 999
)

// Registry holds every known check in registration order.
type Registry struct {
	checks []Check
	byCode map[diag.ErrorCode]Check
}

// NewRegistry validates checks and returns a registry of them.
// Two checks sharing a code is an error: a code identifies exactly one check.
func NewRegistry(checks ...Check) (*Registry, error) {
	r := &Registry{
		checks: make([]Check, 0, len(checks)),
		byCode: make(map[diag.ErrorCode]Check, len(checks)),
	}
	for _, c := range checks {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(c Check) error {
	m := c.Meta()
	if m == nil {
		return errors.New("a check without meta")
	}
	if err := validateMeta(m); err != nil {
		return fmt.Errorf("validate a check: %w", logerr.WithFields(err, logrus.Fields{
			"check_name": m.Name,
			"code":       m.ErrorCode().String(),
		}))
	}
	_, isNode := c.(NodeCheck)
	_, isStmts := c.(StmtsCheck)
	if !isNode && !isStmts {
		return fmt.Errorf("check %s observes no node shape", m.ErrorCode())
	}
	code := m.ErrorCode()
	if prev, ok := r.byCode[code]; ok {
		return fmt.Errorf("error code %s is used by both %s and %s", code, prev.Meta().Name, m.Name)
	}
	r.byCode[code] = c
	r.checks = append(r.checks, c)
	return nil
}

func validateMeta(m *Meta) error {
	if !prefixPattern.MatchString(m.Prefix) {
		return errors.New("prefix must be 3 or 4 uppercase letters")
	}
	if m.Code < minCode || m.Code > maxCode {
		return errors.New("code must be a 3 digit number")
	}
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.Message == "" {
		return errors.New("message is required")
	}
	return nil
}

// All returns a copy of all registered checks.
func (r *Registry) All() []Check {
	result := make([]Check, len(r.checks))
	copy(result, r.checks)
	return result
}

// ByCode returns the check with the given code, or nil.
func (r *Registry) ByCode(code diag.ErrorCode) Check {
	return r.byCode[code]
}

// Active returns the checks which aren't ignored, in registration order.
// Ignored checks are left out entirely so they never run.
func (r *Registry) Active(ignore *Ignore) []Check {
	active := make([]Check, 0, len(r.checks))
	for _, c := range r.checks {
		if ignore.Match(c.Meta()) {
			continue
		}
		active = append(active, c)
	}
	return active
}
