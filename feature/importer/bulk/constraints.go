package bulk

import (
	"context"
	"fmt"

	"mccraft/feature/recipes/models"

	"go.uber.org/zap"
)

// RelaxConstraints drops the relaxed foreign keys, then the relaxed indexes.
// Until RestoreConstraints succeeds the recipe tables are not referentially checked.
func (l *Loader) RelaxConstraints(ctx context.Context) error {
	l.logger.Warn("Dropping foreign keys and indexes for the recipe insert. If the import dies at this point, run `mccraft migrate` before using the database")
	recordRelaxed(true)

	dialect := l.db.Dialector.Name()
	for _, fk := range models.ForeignKeysFor(dialect) {
		if !fk.Relaxed {
			continue
		}
		if err := l.exec(ctx, fk.DropSQL()); err != nil {
			return err
		}
	}
	for _, ix := range models.Indexes {
		if !ix.Relaxed {
			continue
		}
		if err := l.exec(ctx, ix.DropSQL(dialect)); err != nil {
			return err
		}
	}
	return nil
}

// RestoreConstraints re-creates the relaxed indexes, then the relaxed foreign keys.
func (l *Loader) RestoreConstraints(ctx context.Context) error {
	dialect := l.db.Dialector.Name()
	for _, ix := range models.Indexes {
		if !ix.Relaxed {
			continue
		}
		if err := l.exec(ctx, ix.CreateSQL()); err != nil {
			return err
		}
	}
	for _, fk := range models.ForeignKeysFor(dialect) {
		if !fk.Relaxed {
			continue
		}
		if err := l.exec(ctx, fk.AddSQL()); err != nil {
			return err
		}
	}

	recordRelaxed(false)
	l.logger.Warn("Foreign keys and indexes restored, the database should now be in a consistent state")
	return nil
}

func (l *Loader) exec(ctx context.Context, stmt string) error {
	l.logger.Debug("Executing schema statement", zap.String("sql", stmt))
	if err := l.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to execute %q: %w", stmt, err)
	}
	return nil
}
