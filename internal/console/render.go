package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/internal/service"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func sortMarker(spec *models.SortSpec, field string) string {
	switch spec.Indicator(field) {
	case models.SortAsc:
		return " ↑"
	case models.SortDesc:
		return " ↓"
	}
	return ""
}

func renderCollection[T any, P any](w io.Writer, resource service.Resource[T, P], state service.CollectionState[T]) {
	header := make([]string, len(resource.Columns))
	for i, col := range resource.Columns {
		header[i] = col.Header
		if col.Field != "" {
			header[i] += sortMarker(state.Sort, col.Field)
		}
	}
	table := newTable(w, header)
	if state.Page != nil {
		for _, item := range state.Page.Items {
			row := make([]string, len(resource.Columns))
			for i, col := range resource.Columns {
				row[i] = col.Value(item)
			}
			table.Append(row)
		}
	}
	table.Render()

	if len(state.Filters) > 0 {
		keys := make([]string, 0, len(state.Filters))
		for k := range state.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+state.Filters[k])
		}
		fmt.Fprintf(w, "Filters: %s\n", strings.Join(parts, " "))
	}
	fmt.Fprintln(w, pageSummary(state.Page, resource.Plural))
	if state.Errored {
		color.New(color.FgYellow).Fprintf(w, "Last refresh failed, showing the last loaded page (%v)\n", state.Err)
	}
}

func pageSummary[T any](page *models.Page[T], plural string) string {
	if page == nil {
		return fmt.Sprintf("No %s loaded.", plural)
	}
	if len(page.Items) == 0 {
		return fmt.Sprintf("No %s found.", plural)
	}
	if page.Partial {
		return fmt.Sprintf("Showing all %d %s (unpaged response).", len(page.Items), plural)
	}
	from, to := page.Range()
	return fmt.Sprintf("Showing %d–%d of %d %s, page %d of %d.", from, to, page.TotalItems, plural, page.PageIndex+1, page.TotalPages)
}

func renderRecord[T any, P any](w io.Writer, resource service.Resource[T, P], record T) {
	table := newTable(w, []string{"Field", "Value"})
	for _, col := range resource.Columns {
		table.Append([]string{col.Header, col.Value(record)})
	}
	table.Render()
}

func renderForm[T any](w io.Writer, title string, ctl *service.FormController[T]) {
	fmt.Fprintf(w, "%s (%s)\n", title, ctl.State())
	table := newTable(w, []string{"Field", "Name", "Value", ""})
	for _, field := range ctl.Fields() {
		if !ctl.IsVisible(field.Name) {
			continue
		}
		label := field.Label
		if ctl.IsRequired(field.Name) {
			label += " *"
		}
		hint := ""
		if len(field.Options) > 0 {
			hint = "one of " + strings.Join(field.Options, ", ")
		}
		table.Append([]string{label, field.Name, ctl.Value(field.Name), hint})
	}
	table.Render()

	if advisory := ctl.Advisory(); advisory != "" {
		color.New(color.FgYellow).Fprintln(w, advisory)
	}
	if last := ctl.LastError(); last != nil {
		red := color.New(color.FgRed)
		for _, fe := range last.Fields {
			if fe.Field == "" {
				red.Fprintf(w, "  %s\n", fe.Message)
				continue
			}
			red.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
	}
}

func printToast(w io.Writer, n service.Notification) {
	switch n.Kind {
	case service.NotificationError:
		color.New(color.FgRed, color.Bold).Fprintf(w, "✖ %s\n", n.Message)
	default:
		color.New(color.FgGreen, color.Bold).Fprintf(w, "✔ %s\n", n.Message)
	}
}
