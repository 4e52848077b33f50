package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagViewKind     string
	flagViewSearch   string
	flagViewStatus   string
	flagViewPriority string
	flagViewSort     string
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Manage saved views",
	Args:  cobra.NoArgs,
	RunE:  runViewsList,
}

var viewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved views",
	Args:  cobra.NoArgs,
	RunE:  runViewsList,
}

var viewsSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save filter and sort settings under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewsSave,
}

var viewsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved view",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewsDelete,
}

func init() {
	viewsCmd.PersistentFlags().StringVar(&flagViewKind, "kind", "", "Record kind (projects, clients, invoices, tasks, notifications, activity)")

	viewsSaveCmd.Flags().StringVarP(&flagViewSearch, "search", "s", "", "Case-insensitive substring search")
	viewsSaveCmd.Flags().StringVar(&flagViewStatus, "status", model.FilterAll, "Status filter (or \"all\")")
	viewsSaveCmd.Flags().StringVar(&flagViewPriority, "priority", model.FilterAll, "Priority filter, tasks only (or \"all\")")
	viewsSaveCmd.Flags().StringVar(&flagViewSort, "sort", "", "Sort key (empty keeps snapshot order)")

	viewsCmd.AddCommand(viewsListCmd, viewsSaveCmd, viewsDeleteCmd)
	rootCmd.AddCommand(viewsCmd)
}

func openViews() (*store.Store, error) {
	return store.Open(config.ViewsDBPath())
}

func parseKind(s string) (model.Kind, error) {
	kind := model.Kind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", query.ErrUnknownKind, s)
	}
	return kind, nil
}

func runViewsList(_ *cobra.Command, _ []string) error {
	var kind model.Kind
	if flagViewKind != "" {
		k, err := parseKind(flagViewKind)
		if err != nil {
			return err
		}
		kind = k
	}

	views, err := openViews()
	if err != nil {
		return err
	}
	defer func() { _ = views.Close() }()

	list, err := views.List(kind)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("\n  No saved views. Create one with `gigdash views save NAME --kind KIND`.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, v := range list {
		lastUsed := "never"
		if !v.LastUsedAt.IsZero() {
			lastUsed = v.LastUsedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			v.Name,
			string(v.Kind),
			orDash(v.Filter.Search),
			orDash(v.Filter.Status),
			orDash(v.Filter.Priority),
			orDash(string(v.Sort)),
			lastUsed,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVED VIEWS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Kind", "Search", "Status", "Priority", "Sort", "Last Used"},
		Rows:    rows,
	}))
	return nil
}

func runViewsSave(_ *cobra.Command, args []string) error {
	if flagViewKind == "" {
		return errors.New("views save: --kind is required")
	}
	kind, err := parseKind(flagViewKind)
	if err != nil {
		return err
	}

	views, err := openViews()
	if err != nil {
		return err
	}
	defer func() { _ = views.Close() }()

	v, err := views.Save(store.View{
		Name: args[0],
		Kind: kind,
		Filter: query.Filter{
			Search:   flagViewSearch,
			Status:   flagViewStatus,
			Priority: flagViewPriority,
		},
		Sort: query.SortKey(flagViewSort),
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Saved view %q for %s\n", v.Name, v.Kind)
	fmt.Printf("  Use it with: gigdash %s --view %s\n", v.Kind, v.Name)
	return nil
}

func runViewsDelete(_ *cobra.Command, args []string) error {
	views, err := openViews()
	if err != nil {
		return err
	}
	defer func() { _ = views.Close() }()

	if err := views.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted view %q\n", args[0])
	return nil
}

func orDash(s string) string {
	if s == "" || s == model.FilterAll {
		return "-"
	}
	return s
}
