package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/solfront/solana-cluster-provider/internal/cluster"
	"github.com/solfront/solana-cluster-provider/internal/provider"
)

var checkCmd = &cobra.Command{
	Use:   "check [cluster]",
	Short: "Connect to a cluster once and print its info",
	Long:  "Connects to the given cluster (or the configured default), fetches its info and exits non-zero on failure.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customURL, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		sel := cluster.Cluster(cfg.Cluster.Default)
		if len(args) == 1 {
			var err error
			sel, err = cluster.Parse(args[0])
			if err != nil {
				return err
			}
		}
		if customURL != "" {
			sel = cluster.Custom
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p := provider.New(provider.Options{
			Cluster:   sel,
			CustomURL: customURL,
			Hostname:  cfg.Server.PublicHostname,
		})
		updates := p.Subscribe()
		p.Start(ctx)

		for {
			select {
			case <-ctx.Done():
				return fmt.Errorf("timed out connecting to %s", sel)
			case state := <-updates:
				switch state.Status {
				case provider.StatusConnected:
					log.Info("connected",
						"cluster", state.Cluster.DisplayName(),
						"endpoint", p.Endpoint(),
						"genesis_hash", state.Info.GenesisHash,
						"epoch", state.Info.EpochInfo.Epoch,
						"slot", state.Info.EpochInfo.AbsoluteSlot,
						"first_available_block", state.Info.FirstAvailableBlock,
						"slots_per_epoch", state.Info.EpochSchedule.SlotsPerEpoch,
					)
					return nil
				case provider.StatusFailure:
					return fmt.Errorf("connection to %s failed", sel)
				}
			}
		}
	},
}

func init() {
	checkCmd.Flags().String("url", "", "connect to a custom endpoint")
	checkCmd.Flags().Duration("timeout", 45*time.Second, "maximum time to wait for a result")
	rootCmd.AddCommand(checkCmd)
}
