package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wbedit/internal/render"
	"github.com/mesh-intelligence/wbedit/internal/script"
	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/store"
	"github.com/mesh-intelligence/wbedit/pkg/update"
)

// buildFlags are shared by build and merge.
type buildFlags struct {
	base   bool
	dryRun bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.base, "base", false, "validate against the stored revision even if the script does not ask to")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "do not record the update in the journal")
}

func (a *app) newBuildCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build <script>",
		Short: "Build an entity update from an edit script",
		Long: `Build replays a YAML edit script through the update builder for its
entity kind and prints the resulting update. Scripts with "base: true", or
any script when --base is given, are validated against the stored revision
of the entity; otherwise the update is blind. Non-empty updates are
recorded in the journal unless --dry-run is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			built, err := a.buildScript(s, args[0], f.base)
			if err != nil {
				return err
			}
			return a.emit(cmd, s, built, f.dryRun)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newMergeCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "merge <script> <script>...",
		Short: "Build several edit scripts for one entity and merge them",
		Long: `Merge builds each script like build does and merges the updates in
order, so the result has the effect of applying them one after another.
All scripts must target the same entity. The merged update keeps the base
revision of the first script.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			merged, err := a.buildScript(s, args[0], f.base)
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				next, err := a.buildScript(s, path, f.base)
				if err != nil {
					return err
				}
				if merged.update, err = update.Merge(merged.update, next.update); err != nil {
					return classify("merge "+path, err)
				}
			}
			return a.emit(cmd, s, merged, f.dryRun)
		},
	}
	f.register(cmd)
	return cmd
}

// built is an update and the mode it was built in.
type built struct {
	update update.EntityUpdate
	base   bool
}

// buildScript loads the script at path and builds its update, validated
// against the stored revision when the script or forceBase asks for it.
func (a *app) buildScript(s store.Store, path string, forceBase bool) (built, error) {
	sc, err := script.Load(path)
	if err != nil {
		return built{}, classify(path, err)
	}
	id, err := sc.EntityID()
	if err != nil {
		return built{}, classify(path, err)
	}

	var base dm.EntityDocument
	if sc.Base || forceBase {
		if base, err = s.GetRevision(id); err != nil {
			return built{}, classify(path, err)
		}
	}
	u, err := script.Build(sc, base)
	if err != nil {
		return built{}, classify(path, err)
	}
	zap.S().Debugw("update built", "script", path, "entity", id.ID(), "base_revision", u.BaseRevisionID(), "empty", u.IsEmpty())
	return built{update: u, base: base != nil}, nil
}

// emit prints b and records it in the journal.
func (a *app) emit(cmd *cobra.Command, s store.Store, b built, dryRun bool) error {
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		if err := writeJSON(out, render.NewReport(b.update)); err != nil {
			return err
		}
	} else if err := a.printer(out).Print(b.update); err != nil {
		return err
	}

	if dryRun || b.update.IsEmpty() {
		return nil
	}
	mode := store.ModeBlind
	if b.base {
		mode = store.ModeBase
	}
	entry, err := s.RecordUpdate(store.JournalEntry{
		EntityID:     b.update.EntityID(),
		Mode:         mode,
		BaseRevision: b.update.BaseRevisionID(),
		Summary:      render.Summary(b.update),
	})
	if err != nil {
		return sysError("record update: %w", err)
	}
	zap.S().Infow("update recorded", "journal_id", entry.ID, "entity", entry.EntityID.ID())
	if !a.flags.jsonMode {
		fmt.Fprintf(out, "recorded %s\n", entry.ID)
	}
	return nil
}
