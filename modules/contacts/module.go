package contacts

import (
	"embed"

	"github.com/homewardhq/homeward/modules/contacts/infrastructure/persistence"
	"github.com/homewardhq/homeward/modules/contacts/presentation/controllers"
	"github.com/homewardhq/homeward/modules/contacts/services"
	"github.com/homewardhq/homeward/pkg/application"
)

//go:embed infrastructure/persistence/schema/contacts-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	contactRepo := persistence.NewContactRepository()

	app.RegisterServices(
		services.NewContactGroupService(contactRepo, app.EventPublisher()),
		services.NewContactService(contactRepo, app.EventPublisher()),
		services.NewTagService(persistence.NewTagRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewContactGroupsAPIController(app),
		controllers.NewContactsAPIController(app),
		controllers.NewTagsAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "contacts"
}
