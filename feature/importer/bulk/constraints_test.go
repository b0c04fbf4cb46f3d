package bulk

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a MySQL flavoured GORM DB backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func expectExec(mock sqlmock.Sqlmock, stmt string) {
	mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRelaxConstraints_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop(), Options{})

	// Foreign keys go first, MySQL refuses to drop an index a foreign key still uses.
	expectExec(mock, "ALTER TABLE input_slots DROP FOREIGN KEY fk_input_slots_recipe")
	expectExec(mock, "ALTER TABLE crafting_components DROP FOREIGN KEY fk_crafting_components_slot")
	expectExec(mock, "ALTER TABLE crafting_components DROP FOREIGN KEY fk_crafting_components_item")
	expectExec(mock, "ALTER TABLE outputs DROP FOREIGN KEY fk_outputs_item")
	expectExec(mock, "ALTER TABLE outputs DROP FOREIGN KEY fk_outputs_recipe")
	expectExec(mock, "DROP INDEX idx_crafting_components_item ON crafting_components")
	expectExec(mock, "DROP INDEX idx_crafting_components_slot ON crafting_components")
	expectExec(mock, "DROP INDEX idx_outputs_item ON outputs")

	err := loader.RelaxConstraints(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreConstraints_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop(), Options{})

	expectExec(mock, "CREATE INDEX idx_crafting_components_item ON crafting_components (item_id)")
	expectExec(mock, "CREATE INDEX idx_crafting_components_slot ON crafting_components (slot_id)")
	expectExec(mock, "CREATE INDEX idx_outputs_item ON outputs (item_id)")
	expectExec(mock, "ALTER TABLE input_slots ADD CONSTRAINT fk_input_slots_recipe FOREIGN KEY (recipe_id) REFERENCES recipes(id)")
	expectExec(mock, "ALTER TABLE crafting_components ADD CONSTRAINT fk_crafting_components_slot FOREIGN KEY (slot_id) REFERENCES input_slots(id)")
	expectExec(mock, "ALTER TABLE crafting_components ADD CONSTRAINT fk_crafting_components_item FOREIGN KEY (item_id) REFERENCES items(id)")
	expectExec(mock, "ALTER TABLE outputs ADD CONSTRAINT fk_outputs_item FOREIGN KEY (item_id) REFERENCES items(id)")
	expectExec(mock, "ALTER TABLE outputs ADD CONSTRAINT fk_outputs_recipe FOREIGN KEY (recipe_id) REFERENCES recipes(id)")

	err := loader.RestoreConstraints(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelaxConstraints_Failure(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db, zap.NewNop(), Options{})

	expectExec(mock, "ALTER TABLE input_slots DROP FOREIGN KEY fk_input_slots_recipe")
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE crafting_components DROP FOREIGN KEY fk_crafting_components_slot")).
		WillReturnError(errors.New("Error 1091: Can't DROP 'fk_crafting_components_slot'"))

	err := loader.RelaxConstraints(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALTER TABLE crafting_components DROP FOREIGN KEY fk_crafting_components_slot")
	assert.NoError(t, mock.ExpectationsWereMet())
}
