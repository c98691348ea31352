package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/voltdesk/voltdesk/internal/api"
	"github.com/voltdesk/voltdesk/internal/app/sales"
	"github.com/voltdesk/voltdesk/internal/daemon"
	"github.com/voltdesk/voltdesk/internal/infra/observability"
	"github.com/voltdesk/voltdesk/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the VoltDesk API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
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

	svc := sales.New(db, observability.New())
	srv := api.NewServer(svc)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	addr := cfg.API.ListenAddr()
	log.Printf("voltdesk %s listening on http://%s (store: %s)", api.Version, addr, cfg.Store.Path)
	return http.ListenAndServe(addr, srv.Handler())
}
