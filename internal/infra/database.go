package infra

import (
	"fmt"

	"github.com/Kountade/MSG-SARL-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Utilisateur{},
		&model.Client{},
		&model.Produit{},
		&model.Entrepot{},
		&model.StockEntrepot{},
		&model.Vente{},
		&model.VenteLigne{},
		&model.Paiement{},
		&model.MouvementStock{},
		&model.JournalEntree{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS semantics so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Invoice numbering sequence. Numeros are formatted "VT-%06d" from this
		// counter so they stay gapless-ish and monotonic across restarts.
		{"create ventes_numero_seq",
			`CREATE SEQUENCE IF NOT EXISTS ventes_numero_seq START 1`},

		// Partial index for the overdue receivables query (confirmed, unpaid, due date set).
		{"create idx_ventes_echeance", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ventes_echeance') THEN
    CREATE INDEX idx_ventes_echeance
        ON ventes (date_echeance)
        WHERE statut = 'confirmee' AND statut_paiement <> 'paye' AND date_echeance IS NOT NULL;
  END IF;
END $$`},

		// Audit lookups are dominated by model+object queries.
		{"create idx_journal_modele_objet", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_journal_modele_objet') THEN
    CREATE INDEX idx_journal_modele_objet
        ON journal_entrees (modele, objet_id);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
