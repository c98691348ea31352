package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltdesk/voltdesk/internal/daemon"
	"github.com/voltdesk/voltdesk/internal/domain"
	"github.com/voltdesk/voltdesk/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog, roster, agents and discount ladder",
	Long: `Seed the store with the demo dataset: five batteries, three
technicians, three wholesale agents and the default volume discount
ladder. Existing rows with the same ids are overwritten.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, b := range seedBatteries() {
		if err := db.UpsertBattery(b); err != nil {
			return err
		}
	}
	for _, t := range seedTechnicians() {
		if err := db.UpsertTechnician(t); err != nil {
			return err
		}
	}
	for _, c := range seedAgents() {
		if err := db.UpsertCustomer(c); err != nil {
			return err
		}
	}
	if err := db.ReplacePolicies(seedPolicies()); err != nil {
		return err
	}

	fmt.Printf("seeded %s\n", cfg.Store.Path)
	return nil
}

func seedBatteries() []domain.Battery {
	return []domain.Battery{
		{ID: "b1", Name: "GS Platinum GTZ5V", Brand: domain.BrandGS, Capacity: "5Ah", Stock: 45, Price: 350_000, Vehicle: domain.VehicleMotorbike},
		{ID: "b2", Name: "Varta Silver Dynamic", Brand: domain.BrandVarta, Capacity: "75Ah", Stock: 12, Price: 2_850_000, Vehicle: domain.VehicleCar},
		{ID: "b3", Name: "Đồng Nai Pinaco N100", Brand: domain.BrandDongNai, Capacity: "100Ah", Stock: 8, Price: 1_950_000, Vehicle: domain.VehicleCar},
		{ID: "b4", Name: "GS MF 80D26L", Brand: domain.BrandGS, Capacity: "70Ah", Stock: 15, Price: 1_800_000, Vehicle: domain.VehicleCar},
		{ID: "b5", Name: "Panasonic Blue Battery", Brand: domain.BrandPanasonic, Capacity: "45Ah", Stock: 20, Price: 1_450_000, Vehicle: domain.VehicleCar},
	}
}

func seedTechnicians() []domain.Technician {
	return []domain.Technician{
		{ID: "k1", Name: "Nguyễn Văn A", Phone: "0901234567", Status: domain.TechnicianAvailable},
		{ID: "k2", Name: "Trần Văn B", Phone: "0907654321", Status: domain.TechnicianAvailable},
		{ID: "k3", Name: "Lê Văn C", Phone: "0911223344", Status: domain.TechnicianBusy},
	}
}

func seedAgents() []domain.Customer {
	now := time.Now()
	overdue := now.AddDate(0, 0, -45)
	recent := now.AddDate(0, 0, -25)
	return []domain.Customer{
		{ID: "c1", Name: "Gara Ô tô Thành Phát", Type: domain.CustomerAgent, Tier: domain.TierGold,
			Phone: "0988123456", TotalDebt: 15_400_000, CreditLimit: 50_000_000,
			MonthlyQuantity: 35, LastOrderAt: now, DebtSince: &overdue},
		{ID: "c2", Name: "Taxi Group Xanh", Type: domain.CustomerAgent, Tier: domain.TierVIP,
			Phone: "0977222333", TotalDebt: 8_200_000, CreditLimit: 100_000_000,
			MonthlyQuantity: 62, LastOrderAt: now, DebtSince: &recent},
		{ID: "c3", Name: "Đại lý Xe Máy Hòa Bình", Type: domain.CustomerAgent, Tier: domain.TierSilver,
			Phone: "0966444555", CreditLimit: 20_000_000, MonthlyQuantity: 12, LastOrderAt: now},
	}
}

func seedPolicies() []domain.DiscountPolicy {
	return []domain.DiscountPolicy{
		{MinQuantity: 50, DiscountPercent: 12},
		{MinQuantity: 20, DiscountPercent: 8},
		{MinQuantity: 10, DiscountPercent: 5},
		{MinQuantity: 5, DiscountPercent: 2},
	}
}
