// Command paisasplit is the command-line front end of PaisaSplit: split
// calculation, list views over a dataset, the dialog flows and settings.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cli is the root command and the app its first run builds.
type cli struct {
	root   *cobra.Command
	app    *app
	closed bool
}

func newCLI() *cli {
	opts := &options{}
	c := &cli{}

	root := &cobra.Command{
		Use:   "paisasplit",
		Short: "Split shared expenses and browse balances",
		Long: `PaisaSplit splits expenses between friends and groups.

Data comes from a JSON or YAML dataset (--dataset or DATASET_PATH). Without
one the built-in sample is used. Commands that change data only write it
back when --write is given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.app, err = newApp(opts, cmd.ErrOrStderr())
			return err
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&opts.datasetPath, "dataset", "d", "", "dataset file (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "reference time (RFC 3339 or YYYY-MM-DD)")
	root.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print metrics to stderr on exit")
	root.PersistentFlags().BoolVarP(&opts.write, "write", "w", false, "save changes back to the dataset file")

	get := func() *app { return c.app }
	root.AddCommand(
		newSplitCmd(get),
		newExpensesCmd(get),
		newActivityCmd(get),
		newGroupsCmd(get),
		newFriendsCmd(get),
		newDashboardCmd(get),
		newBalancesCmd(get),
		newAddExpenseCmd(get, opts),
		newSettleCmd(get, opts),
		newCreateGroupCmd(get, opts),
		newInviteCmd(get, opts),
		newSettingsCmd(get),
	)
	c.root = root
	return c
}

// execute runs the command tree and then closes the app, also when the
// command failed.
func (c *cli) execute() error {
	err := c.root.Execute()
	if cerr := c.close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// close releases the app once. It is a no-op when no command built one.
func (c *cli) close() error {
	if c.app == nil || c.closed {
		return nil
	}
	c.closed = true
	return c.app.close(c.root.ErrOrStderr())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newCLI().execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
