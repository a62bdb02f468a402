package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/paisasplit/internal/service"
	"github.com/mmynk/paisasplit/internal/settings"
)

func newSettingsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	load := func(cmd *cobra.Command) (*service.SettingsService, error) {
		return service.NewSettingsService(cmd.Context(), get().settings)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show [KEY]...",
			Short: "Print settings as section.field = value",
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := load(cmd)
				if err != nil {
					return err
				}
				s := svc.Get()
				keys := args
				if len(keys) == 0 {
					keys = s.Keys()
				}
				for _, k := range keys {
					v, err := s.Get(k)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, v)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := load(cmd)
				if err != nil {
					return err
				}
				s, err := svc.Set(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				v, _ := s.Get(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := load(cmd)
				if err != nil {
					return err
				}
				if _, err := svc.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "export [FILE]",
			Short: "Write the settings export document",
			Long:  "Write the settings export document to FILE, or to stdout when FILE is \"-\". The default file name includes today's date.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := load(cmd)
				if err != nil {
					return err
				}
				now := get().now
				data, err := settings.MarshalExport(svc.Get(), now)
				if err != nil {
					return err
				}
				path := settings.ExportFileName(now)
				if len(args) == 1 {
					path = args[0]
				}
				if path == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported settings to %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the settings with an export document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read import: %w", err)
				}
				svc, err := load(cmd)
				if err != nil {
					return err
				}
				if _, err := svc.Import(cmd.Context(), data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported settings from %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
