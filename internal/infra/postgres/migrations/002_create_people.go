package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createPeopleTables creates the people and cast_credits tables used by the
// quick-search name lookup.
func createPeopleTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_people",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS people (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					full_name VARCHAR(200) NOT NULL,
					display_name VARCHAR(100),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS cast_credits (
					content_id UUID NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
					person_id UUID NOT NULL REFERENCES people(id) ON DELETE CASCADE,
					role VARCHAR(50),
					PRIMARY KEY (content_id, person_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_people_full_name ON people(full_name);",
				"CREATE INDEX IF NOT EXISTS idx_cast_credits_person ON cast_credits(person_id);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP TABLE IF EXISTS cast_credits;").Error; err != nil {
				return err
			}
			return tx.Exec("DROP TABLE IF EXISTS people;").Error
		},
	}
}
