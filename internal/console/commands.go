package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/printshop-console/internal/service"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
	"github.com/noah-isme/printshop-console/pkg/export"
)

func (c *Console) initCommands() {
	// screens
	c.Register(&command{name: "use", short: "Switch to a resource screen", args: []string{"resource"}, run: c.use})
	c.Register(&command{name: "list", short: "Show the current page", run: c.list})
	c.Register(&command{name: "filter", short: "Set a filter, an empty value clears it", args: []string{"field"}, variable: true, run: c.filter})
	c.Register(&command{name: "sort", short: "Cycle sorting of a column", args: []string{"field"}, run: c.sort})
	c.Register(&command{name: "page", short: "Go to page n, next or prev", args: []string{"n|next|prev"}, run: c.page})
	c.Register(&command{name: "clear", short: "Reset filters, sort and page", run: c.clear})
	c.Register(&command{name: "refresh", short: "Reload the current page", run: c.refresh})
	c.Register(&command{name: "show", short: "Show one record", args: []string{"id"}, run: c.show})
	c.Register(&command{name: "create", short: "Open a form for a new record", run: c.create})
	c.Register(&command{name: "edit", short: "Open a form over a record", args: []string{"id"}, run: c.edit})
	c.Register(&command{name: "delete", short: "Delete a record after confirmation", args: []string{"id"}, run: c.delete})
	c.Register(&command{name: "export", short: "Export the current page", args: []string{"csv|pdf"}, run: c.export})
	c.Register(&command{name: "toasts", short: "List visible notifications", run: c.listToasts})
	// forms
	c.Register(&command{name: "set", short: "Set a form field, an empty value clears it", args: []string{"field"}, variable: true, form: true, run: c.set})
	c.Register(&command{name: "fields", short: "Show the open form", form: true, run: c.fields})
	c.Register(&command{name: "save", short: "Submit the open form", form: true, run: c.save})
	c.Register(&command{name: "cancel", short: "Discard the open form", form: true, run: c.cancel})
}

func (c *Console) use(ctx context.Context, args []string) error {
	s, ok := c.screens[args[0]]
	if !ok {
		return fmt.Errorf("unknown resource %q, one of %s", args[0], strings.Join(c.screenOrder, ", "))
	}
	c.current = s
	return c.list(ctx, nil)
}

func (c *Console) list(ctx context.Context, _ []string) error {
	if !c.current.Loaded() {
		return c.rendered(c.current.Load(ctx))
	}
	c.current.Render(c.out)
	return nil
}

func (c *Console) filter(ctx context.Context, args []string) error {
	return c.rendered(c.current.Filter(ctx, args[0], strings.Join(args[1:], " ")))
}

func (c *Console) sort(ctx context.Context, args []string) error {
	return c.rendered(c.current.Sort(ctx, args[0]))
}

func (c *Console) page(ctx context.Context, args []string) error {
	switch args[0] {
	case "next":
		return c.rendered(c.current.Next(ctx))
	case "prev":
		return c.rendered(c.current.Prev(ctx))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("page expects a number, next or prev")
	}
	return c.rendered(c.current.Page(ctx, n-1))
}

func (c *Console) clear(ctx context.Context, _ []string) error {
	return c.rendered(c.current.Clear(ctx))
}

func (c *Console) refresh(ctx context.Context, _ []string) error {
	return c.rendered(c.current.Refresh(ctx))
}

// rendered shows the list after a collection operation. Requests refused
// before any fetch leave the screen as it was and are only reported.
func (c *Console) rendered(err error) error {
	for _, refused := range []error{
		appErrors.ErrPageOutOfRange,
		appErrors.ErrUnknownFilter,
		appErrors.ErrInvalidFilterValue,
		appErrors.ErrUnsortableField,
	} {
		if errors.Is(err, refused) {
			return err
		}
	}
	c.current.Render(c.out)
	return err
}

func (c *Console) show(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return c.current.Show(ctx, id, c.out)
}

func (c *Console) create(_ context.Context, _ []string) error {
	c.form = c.current.Create()
	c.form.Render(c.out)
	return nil
}

func (c *Console) edit(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	f, err := c.current.Edit(ctx, id)
	if err != nil {
		return err
	}
	c.form = f
	c.form.Render(c.out)
	return nil
}

func (c *Console) delete(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	err = c.current.Delete(ctx, id)
	if errors.Is(err, appErrors.ErrCancelled) {
		fmt.Fprintln(c.out, "Delete cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	c.current.Render(c.out)
	return nil
}

func (c *Console) export(_ context.Context, args []string) error {
	format, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}
	id, err := c.current.Export(format)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Export queued (job %s).\n", id)
	return nil
}

func (c *Console) listToasts(_ context.Context, _ []string) error {
	if c.toasts == nil {
		return nil
	}
	active := c.toasts.Active()
	if len(active) == 0 {
		fmt.Fprintln(c.out, "No notifications.")
		return nil
	}
	for _, n := range active {
		printToast(c.out, n)
	}
	return nil
}

func (c *Console) set(_ context.Context, args []string) error {
	if err := c.form.Set(args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	c.form.Render(c.out)
	return nil
}

func (c *Console) fields(_ context.Context, _ []string) error {
	c.form.Render(c.out)
	return nil
}

// save submits the form. A saved form closes and the list reloads; any
// other outcome keeps the draft open.
func (c *Console) save(ctx context.Context, _ []string) error {
	err := c.form.Save(ctx)
	if errors.Is(err, appErrors.ErrCancelled) {
		fmt.Fprintln(c.out, "Save cancelled.")
		return nil
	}
	if err != nil {
		c.form.Render(c.out)
		return err
	}
	if c.form.State() == service.FormSaved {
		c.form = nil
		return c.rendered(c.current.Refresh(ctx))
	}
	return nil
}

func (c *Console) cancel(_ context.Context, _ []string) error {
	c.form = nil
	fmt.Fprintln(c.out, "Form discarded.")
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
