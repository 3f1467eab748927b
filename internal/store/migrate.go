package store

import (
	"context"

	"entgo.io/ent/dialect"

	"github.com/abhisek/spellbound/ent/migrate"
)

// Table names as generated from ent/schema.
var (
	tableUsers     = migrate.UsersTable.Name
	tableMistakes  = migrate.MistakesTable.Name
	tableSessions  = migrate.PracticeSessionsTable.Name
	tableLLMEvents = migrate.LlmRequestEventsTable.Name
)

// migrateSchema creates or alters tables to match the generated ent schema.
// Columns removed from ent/schema are kept so older databases stay readable.
func migrateSchema(ctx context.Context, drv dialect.Driver) error {
	return migrate.NewSchema(drv).Create(ctx)
}
