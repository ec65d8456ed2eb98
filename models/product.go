package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
)

type Product struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name" binding:"required"`
	HsnCode   string          `gorm:"size:20;default:null" json:"hsn_code"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	IgstRate  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"igst_rate"`
	CgstRate  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cgst_rate"`
	SgstRate  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sgst_rate"`
	IsActive  *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name      string          `json:"name" binding:"required"`
	HsnCode   string          `json:"hsn_code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IgstRate  decimal.Decimal `json:"igst_rate"`
	CgstRate  decimal.Decimal `json:"cgst_rate"`
	SgstRate  decimal.Decimal `json:"sgst_rate"`
}

func (input *NewProduct) validate() error {
	for field, rate := range map[string]decimal.Decimal{
		"igst_rate": input.IgstRate,
		"cgst_rate": input.CgstRate,
		"sgst_rate": input.SgstRate,
	} {
		if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(100)) {
			return &gst.ValidationError{Field: field, Reason: "rate must be between 0 and 100"}
		}
	}
	if input.UnitPrice.LessThan(decimal.Zero) {
		return &gst.ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	db := config.GetDB()
	product := Product{
		Name:      input.Name,
		HsnCode:   input.HsnCode,
		UnitPrice: input.UnitPrice,
		IgstRate:  input.IgstRate,
		CgstRate:  input.CgstRate,
		SgstRate:  input.SgstRate,
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return fetchModel[Product](ctx, id)
}

func GetProducts(ctx context.Context, name *string) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product
	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%").Limit(config.SearchLimit)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {
	return deleteModel[Product](ctx, id)
}
