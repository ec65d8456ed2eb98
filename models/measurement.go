package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
)

// Measurement is a tailoring record for a customer. CRUD-level only; the
// delivery status is a closed enum but has no derivation rules.
type Measurement struct {
	ID            int               `gorm:"primary_key" json:"id"`
	CustomerId    int               `gorm:"index;not null" json:"customer_id" binding:"required"`
	Garment       string            `gorm:"size:100;not null" json:"garment"`
	Chest         decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"chest"`
	Waist         decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"waist"`
	Hip           decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"hip"`
	ShoulderWidth decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"shoulder_width"`
	SleeveLength  decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"sleeve_length"`
	OutseamLength decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"outseam_length"`
	Notes         string            `gorm:"type:text;default:null" json:"notes"`
	RecordedDate  time.Time         `gorm:"not null" json:"recorded_date"`
	DeliveryDate  *time.Time        `gorm:"default:null" json:"delivery_date"`
	CurrentStatus MeasurementStatus `gorm:"type:enum('Recorded', 'Stitching', 'Ready', 'Delivered');not null;default:'Recorded'" json:"current_status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewMeasurement struct {
	CustomerId    int             `json:"customer_id" binding:"required"`
	Garment       string          `json:"garment" binding:"required"`
	Chest         decimal.Decimal `json:"chest"`
	Waist         decimal.Decimal `json:"waist"`
	Hip           decimal.Decimal `json:"hip"`
	ShoulderWidth decimal.Decimal `json:"shoulder_width"`
	SleeveLength  decimal.Decimal `json:"sleeve_length"`
	OutseamLength decimal.Decimal `json:"outseam_length"`
	Notes         string          `json:"notes"`
	RecordedDate  time.Time       `json:"recorded_date"`
	DeliveryDate  *time.Time      `json:"delivery_date"`
}

func CreateMeasurement(ctx context.Context, input *NewMeasurement) (*Measurement, error) {
	if err := validateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return nil, &gst.ValidationError{Field: "customer_id", Reason: "customer not found"}
	}
	recordedDate := input.RecordedDate
	if recordedDate.IsZero() {
		recordedDate = time.Now()
	}
	db := config.GetDB()
	measurement := Measurement{
		CustomerId:    input.CustomerId,
		Garment:       input.Garment,
		Chest:         input.Chest,
		Waist:         input.Waist,
		Hip:           input.Hip,
		ShoulderWidth: input.ShoulderWidth,
		SleeveLength:  input.SleeveLength,
		OutseamLength: input.OutseamLength,
		Notes:         input.Notes,
		RecordedDate:  recordedDate,
		DeliveryDate:  input.DeliveryDate,
		CurrentStatus: MeasurementStatusRecorded,
	}
	if err := db.WithContext(ctx).Create(&measurement).Error; err != nil {
		return nil, err
	}
	return &measurement, nil
}

func GetMeasurement(ctx context.Context, id int) (*Measurement, error) {
	return fetchModel[Measurement](ctx, id)
}

func GetMeasurements(ctx context.Context, customerId *int) ([]*Measurement, error) {
	db := config.GetDB()
	var results []*Measurement
	dbCtx := db.WithContext(ctx)
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	if err := dbCtx.Order("recorded_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateMeasurementStatus(ctx context.Context, id int, status MeasurementStatus) (*Measurement, error) {
	measurement, err := fetchModel[Measurement](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	updates := map[string]interface{}{"CurrentStatus": status}
	if status == MeasurementStatusDelivered && measurement.DeliveryDate == nil {
		now := time.Now()
		updates["DeliveryDate"] = &now
		measurement.DeliveryDate = &now
	}
	if err := db.WithContext(ctx).Model(measurement).Updates(updates).Error; err != nil {
		return nil, err
	}
	measurement.CurrentStatus = status
	return measurement, nil
}

func DeleteMeasurement(ctx context.Context, id int) (*Measurement, error) {
	return deleteModel[Measurement](ctx, id)
}
