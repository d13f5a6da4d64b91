package modules

import (
	"fmt"

	"github.com/homewardhq/homeward/modules/contacts"
	"github.com/homewardhq/homeward/pkg/application"
)

var BuiltInModules = []application.Module{
	contacts.NewModule(),
}

// Load registers each module in order, failing on the first error.
func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return fmt.Errorf("registering module %q: %w", module.Name(), err)
		}
	}
	return nil
}
