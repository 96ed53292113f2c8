package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "kostku_backend/internals/databases"
	invoiceService "kostku_backend/internals/features/billing/invoices/service"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/seeds"
)

type dbOpener func() (*gorm.DB, error)

func newRootCmd(open dbOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "kostctl",
		Short:         "Perintah admin kostku (migrate, seed, invoice)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(open), newSeedCmd(open), newInvoiceCmd(open))
	return root
}

func newMigrateCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate semua tabel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			return database.AutoMigrate(db)
		},
	}
}

func newSeedCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Isi data demo (hanya kalau tabel users kosong)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			ran, err := seeds.RunAllSeeds(db)
			if err != nil {
				return err
			}
			if ran {
				cmd.Println("seed selesai")
			} else {
				cmd.Println("users sudah ada, seed dilewati")
			}
			return nil
		},
	}
}

func newInvoiceCmd(open dbOpener) *cobra.Command {
	invoice := &cobra.Command{
		Use:   "invoice",
		Short: "Operasi invoice",
	}

	var (
		contractRef string
		month, year int
	)
	now := time.Now()

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate invoice satu kontrak untuk satu periode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			contractID, err := resolveContract(ctx, db, contractRef)
			if err != nil {
				return err
			}
			out, err := invoiceService.NewInvoiceService(db).Generate(ctx, contractID, month, year)
			if err != nil {
				return err
			}
			cmd.Printf("invoice %s dibuat: total %s, jatuh tempo %s\n",
				out.InvoiceCode, out.InvoiceTotalAmount.StringFixed(2), out.InvoiceDueDate)
			return nil
		},
	}
	generate.Flags().StringVar(&contractRef, "contract", "", "id atau kode kontrak")
	generate.Flags().IntVar(&month, "month", int(now.Month()), "bulan periode (1-12)")
	generate.Flags().IntVar(&year, "year", now.Year(), "tahun periode")
	_ = generate.MarkFlagRequired("contract")

	invoice.AddCommand(generate)
	return invoice
}

// resolveContract: terima UUID atau kode kontrak
func resolveContract(ctx context.Context, db *gorm.DB, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	var ct contractModel.ContractModel
	if err := db.WithContext(ctx).Select("contract_id").Where("contract_code = ?", ref).First(&ct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("contract not found: %s", ref)
		}
		return uuid.Nil, err
	}
	return ct.ContractID, nil
}
