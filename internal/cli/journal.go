package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/store"
)

func (a *app) newJournalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journal [entity-id]",
		Short: "List recorded updates, oldest first",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runJournal,
	}
}

func (a *app) runJournal(cmd *cobra.Command, args []string) error {
	var id dm.EntityID
	if len(args) == 1 {
		var err error
		if id, err = dm.ParseEntityID(args[0]); err != nil {
			return classify("entity ID", err)
		}
	}
	s, err := a.attachStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	entries, err := s.ListUpdates(id)
	if err != nil {
		return sysError("list journal: %w", err)
	}
	if a.flags.jsonMode {
		if entries == nil {
			return writeJSON(cmd.OutOrStdout(), []any{})
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tENTITY\tMODE\tBASE\tSUMMARY")
	for _, e := range entries {
		base := "-"
		if e.Mode == store.ModeBase {
			base = fmt.Sprint(e.BaseRevision)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.RecordedAt.Local().Format(time.DateTime), e.EntityID, e.Mode, base, e.Summary)
	}
	return tw.Flush()
}
