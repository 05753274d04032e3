package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-employee-admin/internal/client"
	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/listing"

	"github.com/spf13/cobra"
)

const browseHelp = `Commands:
  n, next | p, prev | page <n>     move between pages
  search <text>                    search (empty clears)
  dept <name> | pos <name>         exact filter (empty clears)
  sort <id|firstName|email|position|department>
  sel <id>...                      toggle rows
  all                              select or clear the visible page
  clear                            clear the selection
  delete                           delete the selected employees
  refresh | help | quit`

func (a *app) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive employee table with selection and bulk delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := newBrowser(a.api, cmd.OutOrStdout())
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type browser struct {
	api       API
	out       io.Writer
	state     *listing.State
	employees []domain.Employee
}

func newBrowser(api API, out io.Writer) *browser {
	return &browser{api: api, out: out, state: listing.NewState()}
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	b.refresh(ctx)
	b.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := b.exec(ctx, line); quit {
			return nil
		}
	}
}

// refresh refetches the whole collection. A failure keeps the previous rows.
func (b *browser) refresh(ctx context.Context) {
	all, err := b.api.ListEmployees(ctx)
	if err != nil {
		b.notify(client.Message(err, "Failed to load employees"))
		return
	}
	b.employees = all
}

func (b *browser) render() {
	if err := renderEmployees(b.out, b.state.View(b.employees), b.state.Selection); err != nil {
		b.notify(err.Error())
		return
	}
	if n := b.state.Selection.Len(); n > 0 {
		fmt.Fprintf(b.out, "%d selected\n", n)
	}
}

func (b *browser) notify(msg string) {
	fmt.Fprintln(b.out, "! "+msg)
}

// exec runs one command line and reports whether the session should end.
func (b *browser) exec(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false
	case "n", "next":
		b.state.SetPage(b.state.Params.Page + 1)
	case "p", "prev":
		if b.state.Params.Page > 1 {
			b.state.SetPage(b.state.Params.Page - 1)
		}
	case "page":
		b.state.SetPage(listing.ParsePage(arg))
	case "search":
		b.state.SetQuery(arg)
	case "dept":
		b.state.SetDepartment(arg)
	case "pos":
		b.state.SetPosition(arg)
	case "sort":
		key := listing.ParseSortKey(arg)
		if key == listing.SortNone {
			b.notify(fmt.Sprintf("Unknown sort key %q", arg))
			return false
		}
		b.state.ToggleSort(key)
	case "sel":
		for _, f := range strings.Fields(arg) {
			id, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				b.notify(fmt.Sprintf("Invalid id %q", f))
				return false
			}
			b.state.Selection.Toggle(id)
		}
	case "all":
		b.state.Selection.ToggleAllVisible(b.state.View(b.employees).VisibleIDs())
	case "clear":
		b.state.Selection.Clear()
	case "delete":
		b.deleteSelected(ctx)
	case "refresh":
		b.refresh(ctx)
	default:
		b.notify(fmt.Sprintf("Unknown command %q, type help", name))
		return false
	}

	b.render()
	return false
}

func (b *browser) deleteSelected(ctx context.Context) {
	ids := b.state.Selection.IDs()
	if len(ids) == 0 {
		b.notify("No employees selected")
		return
	}

	if err := b.api.BulkDeleteEmployees(ctx, ids); err != nil {
		b.notify(bulkDeleteFailed)
	} else {
		b.notify(fmt.Sprintf("%d employees deleted successfully", len(ids)))
		b.state.Selection.Clear()
	}
	b.refresh(ctx)
}
