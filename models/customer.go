package models

import (
	"context"
	"time"

	"github.com/tailorbooks/backoffice_backend/config"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone     string    `gorm:"size:20;default:null" json:"phone"`
	Email     string    `gorm:"size:100;default:null" json:"email"`
	Address   string    `gorm:"size:255;default:null" json:"address"`
	Gstin     string    `gorm:"size:15;default:null" json:"gstin"`
	StateCode string    `gorm:"size:2;default:null" json:"state_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Gstin     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	db := config.GetDB()
	customer := Customer{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Gstin:     input.Gstin,
		StateCode: input.StateCode,
	}
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return fetchModel[Customer](ctx, id)
}

func GetCustomers(ctx context.Context, name *string) ([]*Customer, error) {
	db := config.GetDB()
	var results []*Customer
	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%").Limit(config.SearchLimit)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {
	return deleteModel[Customer](ctx, id)
}
