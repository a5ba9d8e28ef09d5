package cmd

import (
	"fmt"
	"strings"

	"github.com/edi-build/edi/internal/app"
	"github.com/edi-build/edi/internal/config"
	"github.com/edi-build/edi/internal/errors"
	"github.com/edi-build/edi/internal/logging"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// loadConfig resolves the configuration rooted at path.
func loadConfig(path string) (*config.Configuration, error) {
	return app.Default.Load(path)
}

// parseSection validates a section name given on the command line.
func parseSection(name string) (config.Section, error) {
	section := config.Section(name)
	shape, known := section.Shape()
	if !known || shape != config.Nested {
		return "", errors.ValidationError(fmt.Sprintf("unknown section '%s': must be one of %s", name, nestedSectionList()))
	}
	return section, nil
}

func nestedSectionList() string {
	names := make([]string, 0, len(config.NestedSections))
	for _, section := range config.NestedSections {
		names = append(names, string(section))
	}
	return strings.Join(names, ", ")
}
