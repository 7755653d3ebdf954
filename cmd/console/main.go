package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/noah-isme/printshop-console/pkg/config"
	"github.com/noah-isme/printshop-console/pkg/logger"
)

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"api-url":   "API_BASE_URL",
	"page-size": "PAGE_SIZE",
	"log-level": "LOG_LEVEL",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "printshop-console",
		Short: "Terminal console for the print shop consumables inventory",
		Long: `Terminal console for the print shop consumables inventory.

Environment variables:
  API_BASE_URL=http://localhost:8080
  PAGE_SIZE=20
  CONFIRM_SAVES=true
  EXPORT_DIR=./exports
  METRICS_ADDR=`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), v, func(ctx context.Context, a *app) error {
				return a.console.Run(ctx)
			})
		},
	}
	cmd.PersistentFlags().String("api-url", "", "inventory backend base URL")
	cmd.PersistentFlags().Int("page-size", 0, "rows per list page")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	cobra.CheckErr(bindFlags(cmd.PersistentFlags(), v))

	cmd.AddCommand(newListCommand(v))
	return cmd
}

func newListCommand(v *viper.Viper) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list <die-cuts|raw-materials|inks>",
		Short: "Print one page of a resource and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), v, func(ctx context.Context, a *app) error {
				if err := a.console.Execute(ctx, "use "+args[0]); err != nil {
					return err
				}
				if page > 1 {
					return a.console.Execute(ctx, fmt.Sprintf("page %d", page))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number to print")
	return cmd
}

func bindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func withApp(ctx context.Context, v *viper.Viper, run func(context.Context, *app) error) error {
	cfg, err := config.LoadWith(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logr, err := logger.NewConsole(cfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := newApp(cfg, logr)
	if err != nil {
		return err
	}
	defer a.Close()

	return run(ctx, a)
}
