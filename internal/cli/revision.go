package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wbedit/internal/script"
	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

func (a *app) newRevisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revision",
		Short: "Manage stored base revisions",
		Long: `Base revisions are entity snapshots that updates are validated against.
They are stored as YAML revision documents.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "put <file>...",
		Short: "Store revision documents, replacing older snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runRevisionPut,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <entity-id>",
		Short: "Print a stored revision as YAML",
		Long: `Print a stored revision as YAML. Forms and senses are also found
inside a stored lexeme.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runRevisionGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored revisions",
		Args:  cobra.NoArgs,
		RunE:  a.runRevisionList,
	})
	return cmd
}

func (a *app) runRevisionPut(cmd *cobra.Command, args []string) error {
	s, err := a.attachStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	for _, path := range args {
		doc, err := script.LoadDocument(path)
		if err != nil {
			return classify(path, err)
		}
		if err := s.PutRevision(doc); err != nil {
			return classify(path, err)
		}
		zap.S().Infow("revision stored", "file", path, "entity", doc.EntityID().ID())
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s revision %d\n", doc.EntityID(), doc.Revision())
	}
	return nil
}

func (a *app) runRevisionGet(cmd *cobra.Command, args []string) error {
	id, err := dm.ParseEntityID(args[0])
	if err != nil {
		return classify("entity ID", err)
	}
	s, err := a.attachStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	doc, err := s.GetRevision(id)
	if err != nil {
		return classify("get revision", err)
	}
	data, err := script.MarshalDocument(doc)
	if err != nil {
		return sysError("encode revision: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) runRevisionList(cmd *cobra.Command, args []string) error {
	s, err := a.attachStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	infos, err := s.ListRevisions()
	if err != nil {
		return sysError("list revisions: %w", err)
	}
	if a.flags.jsonMode {
		if infos == nil {
			return writeJSON(cmd.OutOrStdout(), []any{})
		}
		return writeJSON(cmd.OutOrStdout(), infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored revisions")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tKIND\tREVISION\tSTORED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.EntityID, info.Kind, info.Revision, info.StoredAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
