package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/arcaives/internal/client/services"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/filex"
	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// Login prompts for the admin password until it matches or the prompt is
// left empty.
func (a *App) Login(ctx context.Context, _ []string) error {
	if a.isAdmin() {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}
	for {
		pw, err := GetPassword(a.reader, "Admin password (empty to cancel): ", a.out)
		if err != nil {
			return err
		}
		if pw == "" {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		sess, err := a.admin.Login(ctx, a.session, pw)
		if errors.Is(err, gate.ErrIncorrectPassword) {
			renderNotice(a.out, "Incorrect password.")
			continue
		}
		if err != nil {
			return err
		}
		a.session = sess
		fmt.Fprintln(a.out, "Logged in. Commands: entries, memos, contacts, logout")
		return nil
	}
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	sess, err := a.admin.Logout(ctx, a.session)
	if err != nil {
		return err
	}
	a.session = sess
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// form is the terminal side of one admin manager.
type form[T any, P any] struct {
	noun   string
	id     func(T) string
	rows   func(io.Writer, []T)
	create func(*App) (T, error)
	edit   func(*App, T) (P, error)
}

// manage dispatches list, add, edit <id> and delete <id> to m.
func manage[T any, P any](ctx context.Context, a *App, m *services.Manager[T, P], f form[T, P], args []string) error {
	if !a.isAdmin() {
		return common.ErrorUnauthorized
	}
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list", "ls":
		rows, err := m.List(ctx)
		if err != nil {
			return err
		}
		f.rows(a.out, rows)
		return nil

	case "add":
		row, err := f.create(a)
		if err != nil {
			return err
		}
		created, err := m.Create(ctx, row)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %s %s.\n", f.noun, f.id(*created))
		return nil

	case "edit":
		if len(args) != 2 {
			return usage("%ss edit <id>", f.noun)
		}
		cur, err := m.Get(ctx, args[1])
		if err != nil {
			return err
		}
		p, err := f.edit(a, *cur)
		if err != nil {
			return err
		}
		if _, err := m.Update(ctx, args[1], p); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Updated %s %s.\n", f.noun, args[1])
		return nil

	case "delete", "rm":
		if len(args) != 2 {
			return usage("%ss delete <id>", f.noun)
		}
		ok, err := GetBool(a.reader, fmt.Sprintf("Delete %s %s?", f.noun, args[1]), false, a.out)
		if err != nil || !ok {
			return err
		}
		if err := m.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %s %s.\n", f.noun, args[1])
		return nil
	}
	return usage("%ss [list|add|edit <id>|delete <id>]", f.noun)
}

var entryForm = form[models.ArchiveEntry, models.ArchiveEntryPatch]{
	noun: "entry",
	id:   func(e models.ArchiveEntry) string { return e.ID },
	rows: renderEntryRows,
	create: func(a *App) (models.ArchiveEntry, error) {
		p, err := editEntry(a, models.ArchiveEntry{})
		if err != nil {
			return models.ArchiveEntry{}, err
		}
		var e models.ArchiveEntry
		p.Apply(&e)
		return e, nil
	},
	edit: editEntry,
}

func editEntry(a *App, cur models.ArchiveEntry) (models.ArchiveEntryPatch, error) {
	var p models.ArchiveEntryPatch

	title, err := GetDefault(a.reader, "Title", cur.Title, a.out)
	if err != nil {
		return p, err
	}
	replace := cur.Content == ""
	if !replace {
		if replace, err = GetBool(a.reader, "Replace content?", false, a.out); err != nil {
			return p, err
		}
	}
	content := cur.Content
	if replace {
		if content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
			return p, err
		}
	}
	secret, err := GetBool(a.reader, "Secret?", cur.IsSecret, a.out)
	if err != nil {
		return p, err
	}
	password := ""
	if secret {
		if password, err = GetDefault(a.reader, "Password (empty makes it private)", cur.SecretPassword, a.out); err != nil {
			return p, err
		}
	}
	order, err := GetInt(a.reader, "Sort order", cur.SortOrder, a.out)
	if err != nil {
		return p, err
	}

	p.Title = changed(cur.Title, title)
	p.Content = changed(cur.Content, content)
	p.IsSecret = changed(cur.IsSecret, secret)
	p.SecretPassword = changed(cur.SecretPassword, password)
	p.SortOrder = changed(cur.SortOrder, order)
	return p, nil
}

var memoForm = form[models.Memo, models.MemoPatch]{
	noun: "memo",
	id:   func(m models.Memo) string { return m.ID },
	rows: renderMemoRows,
	create: func(a *App) (models.Memo, error) {
		p, err := editMemo(a, models.Memo{})
		if err != nil {
			return models.Memo{}, err
		}
		var m models.Memo
		p.Apply(&m)
		return m, nil
	},
	edit: editMemo,
}

func editMemo(a *App, cur models.Memo) (models.MemoPatch, error) {
	var p models.MemoPatch

	title, err := GetDefault(a.reader, "Title", cur.Title, a.out)
	if err != nil {
		return p, err
	}
	link, err := GetDefault(a.reader, "Link", cur.Link, a.out)
	if err != nil {
		return p, err
	}
	body, err := GetDefault(a.reader, "Memo", cur.Memo, a.out)
	if err != nil {
		return p, err
	}
	tags, err := GetDefault(a.reader, "Tags (comma separated, first is the category)", cur.Tags, a.out)
	if err != nil {
		return p, err
	}
	secret, err := GetBool(a.reader, "Secret?", cur.IsSecret, a.out)
	if err != nil {
		return p, err
	}

	p.Title = changed(cur.Title, title)
	p.Link = changed(cur.Link, link)
	p.Memo = changed(cur.Memo, body)
	p.Tags = changed(cur.Tags, tags)
	p.IsSecret = changed(cur.IsSecret, secret)
	return p, nil
}

var contactForm = form[models.Contact, models.ContactPatch]{
	noun: "contact",
	id:   func(c models.Contact) string { return c.ID },
	rows: renderContactRows,
	create: func(a *App) (models.Contact, error) {
		p, err := editContact(a, models.Contact{IsActive: true})
		if err != nil {
			return models.Contact{}, err
		}
		c := models.Contact{IsActive: true}
		p.Apply(&c)
		return c, nil
	},
	edit: editContact,
}

func editContact(a *App, cur models.Contact) (models.ContactPatch, error) {
	var p models.ContactPatch

	link, err := GetDefault(a.reader, "Link URL", cur.LinkURL, a.out)
	if err != nil {
		return p, err
	}
	order, err := GetInt(a.reader, "Sort order", cur.SortOrder, a.out)
	if err != nil {
		return p, err
	}
	active, err := GetBool(a.reader, "Active?", cur.IsActive, a.out)
	if err != nil {
		return p, err
	}

	p.LinkURL = changed(cur.LinkURL, link)
	p.SortOrder = changed(cur.SortOrder, order)
	p.IsActive = changed(cur.IsActive, active)
	return p, nil
}

// changed returns &next when it differs from cur.
func changed[V comparable](cur, next V) *V {
	if cur == next {
		return nil
	}
	return &next
}

func (a *App) Entries(ctx context.Context, args []string) error {
	return manage(ctx, a, a.admin.Entries, entryForm, args)
}

func (a *App) Memos(ctx context.Context, args []string) error {
	return manage(ctx, a, a.admin.Memos, memoForm, args)
}

// Contacts adds "image <id> <path>" to the common manager commands.
func (a *App) Contacts(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "image" {
		return manage(ctx, a, &a.admin.Contacts.Manager, contactForm, args)
	}
	if len(args) != 3 {
		return usage("contacts image <id> <path>")
	}
	if !a.isAdmin() {
		return common.ErrorUnauthorized
	}

	data, err := filex.ReadLimited(args[2], services.MaxImageBytes)
	if err != nil {
		return err
	}
	c, err := a.admin.Contacts.UploadImage(ctx, args[1], filepath.Base(args[2]), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Image set: %s\n", c.ImageURL)
	return nil
}
