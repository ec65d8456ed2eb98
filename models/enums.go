package models

import (
	"encoding/json"
	"errors"

	"github.com/tailorbooks/backoffice_backend/gst"
)

// InvoiceStatus is the closed payment-lifecycle enum shared by sales and
// purchase invoices. The transition rules live in the gst package; status is
// never written as free text.
type InvoiceStatus = gst.InvoiceStatus

type MeasurementStatus string

const (
	MeasurementStatusRecorded  MeasurementStatus = "Recorded"
	MeasurementStatusStitching MeasurementStatus = "Stitching"
	MeasurementStatusReady     MeasurementStatus = "Ready"
	MeasurementStatusDelivered MeasurementStatus = "Delivered"
)

func (s *MeasurementStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("measurement status must be string")
	}

	measurementStatus := map[string]MeasurementStatus{
		"Recorded":  MeasurementStatusRecorded,
		"Stitching": MeasurementStatusStitching,
		"Ready":     MeasurementStatusReady,
		"Delivered": MeasurementStatusDelivered,
	}

	status, ok := measurementStatus[str]
	if !ok {
		return errors.New("invalid measurement status")
	}
	*s = status
	return nil
}

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeBank PaymentMode = "Bank"
	PaymentModeCard PaymentMode = "Card"
	PaymentModeUpi  PaymentMode = "UPI"
)

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("payment mode must be string")
	}
	switch str {
	case "Cash":
		*m = PaymentModeCash
	case "Bank":
		*m = PaymentModeBank
	case "Card":
		*m = PaymentModeCard
	case "UPI":
		*m = PaymentModeUpi
	default:
		return errors.New("invalid payment mode")
	}
	return nil
}
