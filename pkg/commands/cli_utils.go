package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iota-uz/deptemp/modules"
	"github.com/iota-uz/deptemp/modules/hrm"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/commands/common"
	"github.com/iota-uz/deptemp/pkg/configuration"
)

// NewUtilityCommands creates the migrate and seed commands.
func NewUtilityCommands() []*cobra.Command {
	return []*cobra.Command{
		newMigrateCmd(),
		newSeedCmd(),
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations of the configured SQL store",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), configuration.Use(), "up", cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), configuration.Use(), "down", cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), configuration.Use(), "status", cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with demo departments and employees",
		Long:  `Creates the ACCOUNTING, RESEARCH, SALES and OPERATIONS departments and a few employees through the services, so the same integrity rules apply. Does nothing when departments already exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SeedDatabase(cmd.Context(), configuration.Use(), modules.BuiltInModules...)
		},
	}
}

// Migrate runs direction (up, down or status) against the configured store.
func Migrate(ctx context.Context, conf *configuration.Configuration, direction string, out io.Writer) error {
	handles, err := common.OpenHandles(ctx, conf)
	if err != nil {
		return err
	}
	defer handles.Close()

	migrator, closeFn, err := handles.Migrator(conf)
	if err != nil {
		return err
	}
	defer closeFn()
	if migrator == nil {
		return fmt.Errorf("driver %q has no schema to migrate", conf.Database.Driver)
	}

	switch direction {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "VERSION\tSTATE\tSOURCE")
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Source)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}

// SeedDatabase applies pending migrations and runs the demo seed.
func SeedDatabase(ctx context.Context, conf *configuration.Configuration, mods ...application.Module) error {
	handles, err := common.OpenHandles(ctx, conf)
	if err != nil {
		return err
	}
	defer handles.Close()

	migrator, closeFn, err := handles.Migrator(conf)
	if err != nil {
		return err
	}
	defer closeFn()
	if migrator != nil {
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	app, err := common.NewApplication(conf, handles, mods...)
	if err != nil {
		return err
	}
	seeder := application.NewSeeder()
	seeder.Register(hrm.SeedDemoData)
	return seeder.Seed(ctx, app)
}
