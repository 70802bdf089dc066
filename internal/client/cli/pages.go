package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/arcaives/internal/client/services"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/gate"
)

var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// Home renders the landing page. Sections that failed to load are shown
// empty and the joined error is returned.
func (a *App) Home(ctx context.Context, _ []string) error {
	a.session = a.session.Navigate()
	h, err := a.landing.Home(ctx)
	if h != nil {
		renderHome(a.out, h)
	}
	return err
}

// Arcaives renders the archive list and remembers it for Open.
func (a *App) Arcaives(ctx context.Context, _ []string) error {
	a.session = a.session.Navigate()
	items, err := a.archive.List(ctx)
	if err != nil {
		return err
	}
	a.list = items
	renderArchiveList(a.out, items)
	return nil
}

// Open picks an entry from the last list by number or id and runs the
// list-context challenge for it. Cancelling stays on the list.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open <n|id>")
	}
	if a.list == nil {
		items, err := a.archive.List(ctx)
		if err != nil {
			return err
		}
		a.list = items
	}

	item, ok := a.pick(args[0])
	if !ok {
		renderNotice(a.out, "No such entry in the list.")
		return nil
	}
	if !item.Clickable {
		renderNotice(a.out, "This entry is private.")
		return nil
	}
	if item.Lock == gate.LockNone {
		return a.showDetail(ctx, item.Entry.ID, nil)
	}

	for {
		pw, err := GetPassword(a.reader, fmt.Sprintf("Password for %q (empty to cancel): ", item.Entry.Title), a.out)
		if err != nil {
			return err
		}
		if pw == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		marker, err := a.archive.Open(item, pw)
		if errors.Is(err, gate.ErrIncorrectPassword) {
			renderNotice(a.out, "Incorrect password.")
			continue
		}
		if err != nil {
			return err
		}
		return a.showDetail(ctx, item.Entry.ID, marker)
	}
}

func (a *App) pick(ref string) (gate.Item, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.list) {
			return gate.Item{}, false
		}
		return a.list[n-1], true
	}
	for _, it := range a.list {
		if it.Entry.ID == ref {
			return it, true
		}
	}
	return gate.Item{}, false
}

// Arcaive navigates straight to an entry's detail view.
func (a *App) Arcaive(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("arcaive <id>")
	}
	return a.showDetail(ctx, args[0], nil)
}

// showDetail evaluates the entry with the marker, challenging on the detail
// view when needed. A missing entry or a cancelled challenge shows the list.
func (a *App) showDetail(ctx context.Context, id string, marker *gate.Unlock) error {
	sess, d, err := a.archive.Detail(ctx, a.session, id, marker)
	if errors.Is(err, common.ErrorNotFound) {
		renderNotice(a.out, "Entry not found.")
		return a.Arcaives(ctx, nil)
	}
	if err != nil {
		return err
	}
	a.session = sess

	for d.View.Decision == gate.Challenge {
		renderDetail(a.out, d)
		pw, err := GetPassword(a.reader, "Password (empty to cancel): ", a.out)
		if err != nil {
			return err
		}
		if pw == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return a.Arcaives(ctx, nil)
		}
		var next *services.Detail
		a.session, next, err = a.archive.Unlock(a.session, d, pw)
		if errors.Is(err, gate.ErrIncorrectPassword) {
			renderNotice(a.out, "Incorrect password.")
			continue
		}
		if err != nil {
			return err
		}
		d = next
	}

	renderDetail(a.out, d)
	return nil
}

// Memo renders the memo list for one category, ALL by default.
func (a *App) Memo(ctx context.Context, args []string) error {
	a.session = a.session.Navigate()
	tag := ""
	if len(args) > 0 {
		tag = args[0]
	}
	p, err := a.memos.Page(ctx, tag)
	if err != nil {
		return err
	}
	if tag != "" && tag != p.Selected {
		renderNotice(a.out, fmt.Sprintf("Unknown category %q, showing all.", tag))
	}
	renderMemoPage(a.out, p)
	return nil
}
