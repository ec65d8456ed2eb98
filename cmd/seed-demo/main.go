// seed-demo loads a small demo data set: the company profile, a customer,
// and a few products with their GST rates. Safe to rerun; existing rows are
// matched by name.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	if _, err := models.SaveCompany(ctx, &models.NewCompany{
		Name:      "Sharma Tailors",
		Gstin:     "27AAPFU0939F1ZV",
		Address:   "14 MG Road, Pune",
		Phone:     "+91 98220 12345",
		StateCode: "27",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed company: %v\n", err)
		os.Exit(1)
	}

	customers, err := models.GetCustomers(ctx, strPtr("Anil Kumar"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup customers: %v\n", err)
		os.Exit(1)
	}
	if len(customers) == 0 {
		if _, err := models.CreateCustomer(ctx, &models.NewCustomer{
			Name:      "Anil Kumar",
			Phone:     "+91 98765 43210",
			Address:   "7 FC Road, Pune",
			StateCode: "27",
		}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed customer: %v\n", err)
			os.Exit(1)
		}
	}

	nine := decimal.NewFromInt(9)
	for _, product := range []models.NewProduct{
		{Name: "Kurta stitching", HsnCode: "9988", UnitPrice: decimal.NewFromInt(1500), CgstRate: nine, SgstRate: nine},
		{Name: "Suit stitching", HsnCode: "9988", UnitPrice: decimal.NewFromInt(6500), CgstRate: nine, SgstRate: nine},
		{Name: "Silk fabric (per metre)", HsnCode: "5007", UnitPrice: decimal.NewFromInt(800), CgstRate: decimal.NewFromFloat(2.5), SgstRate: decimal.NewFromFloat(2.5)},
	} {
		existing, err := models.GetProducts(ctx, &product.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to lookup products: %v\n", err)
			os.Exit(1)
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := models.CreateProduct(ctx, &product); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed product %q: %v\n", product.Name, err)
			os.Exit(1)
		}
	}

	fmt.Println("demo data seeded")
}

func strPtr(s string) *string { return &s }
