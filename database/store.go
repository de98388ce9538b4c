package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
	"gorm.io/gorm"
)

// Store keeps every collection in its own table and rewrites a collection as a whole.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Migrate() error {
	err := s.DB.AutoMigrate(
		&models.RegistrySettings{},
		&models.Tab{},
		&models.Product{},
		&models.PaymentMethod{},
		&models.FinancialTransaction{},
		&models.StockMovement{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedPaymentMethods installs the default methods on an empty table.
func (s *Store) SeedPaymentMethods(ctx context.Context) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.PaymentMethod{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count payment methods: %w", err)
	}
	if count > 0 {
		return nil
	}
	methods := models.DefaultPaymentMethods()
	if err := s.DB.WithContext(ctx).Create(&methods).Error; err != nil {
		return fmt.Errorf("seed payment methods: %w", err)
	}
	utils.InfoLogger.WithField("count", len(methods)).Info("default payment methods seeded")
	return nil
}

func (s *Store) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := s.DB.WithContext(ctx).Order("position ASC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("load payment methods: %w", err)
	}
	return methods, nil
}

func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return products, nil
}

// SaveProduct adds or replaces one catalog entry.
func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save product %s: %w", p.ID, err)
	}
	return nil
}

// Load returns the persisted registry and ledgers. Settings are nil on a fresh database.
func (s *Store) Load(ctx context.Context) (*services.State, error) {
	db := s.DB.WithContext(ctx)
	state := &services.State{}

	var settings models.RegistrySettings
	err := db.First(&settings).Error
	switch {
	case err == nil:
		state.Settings = &settings
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := db.Order("number ASC").Find(&state.Tabs).Error; err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}
	if err := db.Order("seq ASC").Find(&state.Financial).Error; err != nil {
		return nil, fmt.Errorf("load financial ledger: %w", err)
	}
	if err := db.Order("seq ASC").Find(&state.Stock).Error; err != nil {
		return nil, fmt.Errorf("load stock ledger: %w", err)
	}
	return state, nil
}

// Save rewrites the dirty collections inside one transaction.
func (s *Store) Save(ctx context.Context, snap services.Snapshot) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if snap.TabsDirty {
			if err := tx.Save(&snap.Settings).Error; err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			if err := replaceAll(tx, &models.Tab{}, snap.Tabs); err != nil {
				return fmt.Errorf("save tabs: %w", err)
			}
		}
		if snap.LedgerDirty {
			financial := make([]models.FinancialTransaction, len(snap.Financial))
			for i, f := range snap.Financial {
				f.Seq = i
				financial[i] = f
			}
			if err := replaceAll(tx, &models.FinancialTransaction{}, financial); err != nil {
				return fmt.Errorf("save financial ledger: %w", err)
			}
			stock := make([]models.StockMovement, len(snap.Stock))
			for i, m := range snap.Stock {
				m.Seq = i
				stock[i] = m
			}
			if err := replaceAll(tx, &models.StockMovement{}, stock); err != nil {
				return fmt.Errorf("save stock ledger: %w", err)
			}
		}
		return nil
	})
}

func replaceAll[T any](tx *gorm.DB, model *T, rows []T) error {
	if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}
