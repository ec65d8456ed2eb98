package models

import (
	"log"

	"github.com/tailorbooks/backoffice_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Company{},
		&Customer{}, &Product{},
		&Invoice{}, &InvoiceItem{}, &InvoicePayment{},
		&PurchaseInvoice{},
		&Measurement{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
