package commands

import (
	"fmt"
	"strings"

	"github.com/rc-tools/cost-ledger/pkg/services/config"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
	"github.com/spf13/cobra"
)

type SourcesCmd struct {
	profilePath string
	registry    ingest.Registry
}

func NewSourcesCmd(registry ingest.Registry) *cobra.Command {
	sc := &SourcesCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List configured usage sources",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the source profiles file")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (sc *SourcesCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	profiles, err := config.NewRegistry(sc.profilePath)
	if err != nil {
		return err
	}

	names, err := profiles.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No sources configured in %s\n", sc.profilePath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configured sources (types: %s):\n%s\n",
		strings.Join(sc.registry.ListTypes(), ", "),
		strings.Join(names, "\n"))

	return nil
}
