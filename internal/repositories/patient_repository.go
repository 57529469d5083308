package repositories

import (
	"context"
	"fmt"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// PatientRepository defines the interface for patient (pet) lookups
type PatientRepository interface {
	GetPatientByID(ctx context.Context, id uint) (*models.Patient, error)
	GetPatientsByIDs(ctx context.Context, ids []uint) ([]models.Patient, error)
}

// PostgresPatientRepository implements PatientRepository for PostgreSQL
type PostgresPatientRepository struct {
	db *gorm.DB
}

// NewPostgresPatientRepository creates a new PostgresPatientRepository
func NewPostgresPatientRepository(db *gorm.DB) *PostgresPatientRepository {
	return &PostgresPatientRepository{db: db}
}

// GetPatientByID retrieves a patient by ID
func (r *PostgresPatientRepository) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("patient not found")
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientsByIDs retrieves a batch of patients in a single query
func (r *PostgresPatientRepository) GetPatientsByIDs(ctx context.Context, ids []uint) ([]models.Patient, error) {
	var patients []models.Patient
	if len(ids) == 0 {
		return patients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}
