package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/solfront/solana-cluster-provider/internal/cluster"
	"github.com/solfront/solana-cluster-provider/internal/config"
	"github.com/solfront/solana-cluster-provider/internal/hooks"
	"github.com/solfront/solana-cluster-provider/internal/provider"
	"github.com/solfront/solana-cluster-provider/internal/report"
	"github.com/solfront/solana-cluster-provider/internal/server"
	"github.com/solfront/solana-cluster-provider/internal/settings"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cluster connection state over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := settings.Open(cfg.Settings.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		var reporter report.Reporter = report.Nop{}
		if cfg.Report.Enabled {
			sentry, err := report.NewSentry(cfg.Report.DSN, cfg.Report.Environment)
			if err != nil {
				return fmt.Errorf("initializing error reporting: %w", err)
			}
			defer sentry.Close()
			reporter = sentry
		}

		sel, customURL := initialSelection(store)

		p := provider.New(provider.Options{
			Cluster:   sel,
			CustomURL: customURL,
			Hostname:  cfg.Server.PublicHostname,
			Reporter:  reporter,
		})

		go runLifecycleHooks(ctx, p, p.Subscribe())

		p.Start(ctx)

		srv := &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: server.New(ctx, p, store).Handler(),
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		log.Info("serving connection state", "addr", cfg.Server.ListenAddr, "cluster", sel)

		select {
		case <-ctx.Done():
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	},
}

// initialSelection prefers the selection persisted by a previous run over
// the configured default.
func initialSelection(store *settings.Store) (cluster.Cluster, string) {
	clusterName, customURL := store.LastSelection()
	if clusterName == "" {
		clusterName = cfg.Cluster.Default
		customURL = cfg.Cluster.CustomURL
	}

	sel, err := cluster.Parse(clusterName)
	if err != nil {
		log.Warn("ignoring invalid persisted selection", "cluster", clusterName, "error", err)
		return cluster.MainnetBeta, ""
	}
	if sel.IsCustom() && !store.CustomURLAllowed() {
		log.Warn("persisted custom selection ignored, custom URLs are disabled")
		return cluster.MainnetBeta, ""
	}
	return sel, customURL
}

// runLifecycleHooks fires the configured hook commands on every applied
// Connected or Failure transition.
func runLifecycleHooks(ctx context.Context, p *provider.Provider, updates <-chan provider.State) {
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}

			data := hooks.TemplateData{
				Cluster:     state.Cluster.String(),
				DisplayName: state.Cluster.DisplayName(),
				Endpoint:    p.Endpoint(),
				Status:      state.Status.String(),
			}

			var cmds []config.HookCommand
			switch state.Status {
			case provider.StatusConnected:
				cmds = cfg.Hooks.OnConnected
				data.GenesisHash = state.Info.GenesisHash
				data.Epoch = state.Info.EpochInfo.Epoch
			case provider.StatusFailure:
				cmds = cfg.Hooks.OnFailure
			default:
				continue
			}

			if err := hooks.RunHooks(ctx, cmds, data); err != nil {
				log.Error("lifecycle hooks failed", "status", state.Status, "error", err)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
