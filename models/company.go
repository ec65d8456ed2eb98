package models

import (
	"context"
	"time"

	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

// Company is the single-row business profile printed on invoices.
type Company struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Gstin     string    `gorm:"size:15;default:null" json:"gstin"`
	Address   string    `gorm:"size:255;default:null" json:"address"`
	Phone     string    `gorm:"size:20;default:null" json:"phone"`
	Email     string    `gorm:"size:100;default:null" json:"email"`
	StateCode string    `gorm:"size:2;default:null" json:"state_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCompany struct {
	Name      string `json:"name" binding:"required"`
	Gstin     string `json:"gstin"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	StateCode string `json:"state_code"`
}

func GetCompany(ctx context.Context) (*Company, error) {
	db := config.GetDB()
	var company Company
	if err := db.WithContext(ctx).Order("id").First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &company, nil
}

// SaveCompany upserts the profile; the first save creates the row.
func SaveCompany(ctx context.Context, input *NewCompany) (*Company, error) {
	db := config.GetDB()

	company, err := GetCompany(ctx)
	if err != nil && err != utils.ErrorRecordNotFound {
		return nil, err
	}
	if company == nil {
		company = &Company{}
	}
	company.Name = input.Name
	company.Gstin = input.Gstin
	company.Address = input.Address
	company.Phone = input.Phone
	company.Email = input.Email
	company.StateCode = input.StateCode

	if err := db.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}
