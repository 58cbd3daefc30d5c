package migrations

import (
	"github.com/hmwm/akina-halo/internal/models"
	"gorm.io/gorm"
)

// AllMigrations returns all registered migrations in order.
// - 001: Schema creation using GORM AutoMigrate
// - 002: Seed the default theme configuration
func AllMigrations() []Migration {
	return []Migration{
		migration001Schema(),
		migration002DefaultTheme(),
	}
}

func migration001Schema() Migration {
	return Migration{
		Version:     "001",
		Description: "Create theme tables",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.ThemeConfigRecord{},
				&models.ThemeFile{},
				&models.ThemeSnapshot{},
			)
		},
		Down: func(tx *gorm.DB) error {
			for _, table := range []string{"theme_snapshots", "theme_files", "theme_configs"} {
				if tx.Migrator().HasTable(table) {
					if err := tx.Migrator().DropTable(table); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func migration002DefaultTheme() Migration {
	return Migration{
		Version:     "002",
		Description: "Insert default theme configuration",
		Up: func(tx *gorm.DB) error {
			cfg := models.DefaultThemeConfig()
			return tx.Create(&models.ThemeConfigRecord{Name: cfg.Name, Config: cfg}).Error
		},
		Down: func(tx *gorm.DB) error {
			return tx.Where("name = ?", models.DefaultThemeConfig().Name).Delete(&models.ThemeConfigRecord{}).Error
		},
	}
}
