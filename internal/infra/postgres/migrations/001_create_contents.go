package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createContentsTable creates the contents table with all indexes.
func createContentsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_contents",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS contents (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title VARCHAR(500) NOT NULL,
					description TEXT,
					short_description VARCHAR(500),
					type VARCHAR(20) NOT NULL,

					-- Popularity and editorial signals
					view_count BIGINT DEFAULT 0,
					average_rating DECIMAL(3,1) DEFAULT 0,
					featured BOOLEAN DEFAULT FALSE,
					trending BOOLEAN DEFAULT FALSE,

					-- Eligibility
					status VARCHAR(20) NOT NULL DEFAULT 'draft',
					visibility VARCHAR(20) NOT NULL DEFAULT 'private',

					genres TEXT[],
					categories TEXT[],
					poster_path VARCHAR(500),

					release_date TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_contents_title ON contents(title);",
				"CREATE INDEX IF NOT EXISTS idx_contents_type ON contents(type);",
				"CREATE INDEX IF NOT EXISTS idx_contents_eligibility ON contents(status, visibility);",
				"CREATE INDEX IF NOT EXISTS idx_contents_view_count ON contents(view_count DESC);",
				"CREATE INDEX IF NOT EXISTS idx_contents_release_date ON contents(release_date DESC);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS contents;").Error
		},
	}
}
