package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	DefaultConfigPath = ".refurb.yaml"

	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/suzuki-shunsuke/refurb/refs/heads/main/json-schema/refurb.json
# refurb - https://github.com/suzuki-shunsuke/refurb
# files:
#   - pattern: "src/**/*.py"

# Error codes (FURB113 or 113) and categories (#list) to ignore.
ignore:
# - FURB113
# - "#readability"

# exclude:
#   - "**/migrations/*.py"

# Check packs. A directory loads every *.yaml and *.yml in it.
# load:
#   - refurb-checks

# quiet: false
# format: text # text, json, sarif
# jobs: 0 # 0 means the number of CPUs

# engine:
#   command: [refurb-dump-ast]
#   format: json # json, msgpack
#   no_cache: false
`
	filePermission os.FileMode = 0o644
)

// Init writes the template to configFilePath. An existing file is kept as is.
func (c *Controller) Init(configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}
