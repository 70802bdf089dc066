package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/arcaives/internal/client/services"
	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginTop(1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	lockStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	contentStyle  = lipgloss.NewStyle().PaddingLeft(2)
	tileStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(16).
			Align(lipgloss.Center)
)

func lockMarker(l gate.Lock) string {
	switch l {
	case gate.LockSoft:
		return lockStyle.Render("[locked]")
	case gate.LockHard:
		return lockStyle.Render("[private]")
	}
	return ""
}

func renderNotice(w io.Writer, msg string) {
	fmt.Fprintln(w, noticeStyle.Render("! "+msg))
}

func renderHome(w io.Writer, h *services.Home) {
	fmt.Fprintln(w, headingStyle.Render("ARCAIVES"))
	renderShelf(w, "top", h.TopShelf)
	renderShelf(w, "bottom", h.BottomShelf)

	fmt.Fprintln(w, headingStyle.Render("MEMOS"))
	if len(h.Memos) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  nothing yet"))
	}
	for _, p := range h.Memos {
		fmt.Fprintf(w, "  %s %s\n", titleStyle.Render(p.Memo.Title), renderTags(p.Tags))
	}

	fmt.Fprintln(w, headingStyle.Render("SHORTCUTS"))
	tiles := make([]string, len(h.Tiles))
	for i, t := range h.Tiles {
		tiles[i] = tileStyle.Render(tileLabel(t))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
}

func renderShelf(w io.Writer, name string, items []gate.Item) {
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, strings.TrimSpace(it.Entry.Title+" "+lockMarker(it.Lock)))
	}
	if len(labels) == 0 {
		labels = append(labels, dimStyle.Render("empty"))
	}
	fmt.Fprintf(w, "  %-7s %s\n", name, strings.Join(labels, " | "))
}

// tileLabel is the host of the contact link, or a dot for an empty slot.
func tileLabel(t services.Tile) string {
	if t.Contact == nil {
		return dimStyle.Render("·")
	}
	if u, err := url.Parse(t.Contact.LinkURL); err == nil && u.Host != "" {
		return u.Host
	}
	if t.Contact.LinkURL != "" {
		return t.Contact.LinkURL
	}
	return "(no link)"
}

func renderTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = tagStyle.Render("#" + t)
	}
	return strings.Join(out, " ")
}

func renderArchiveList(w io.Writer, items []gate.Item) {
	fmt.Fprintln(w, headingStyle.Render("ARCAIVES"))
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no entries"))
		return
	}
	for i, it := range items {
		line := fmt.Sprintf("%3d. %s %s", i+1, it.Entry.Title, lockMarker(it.Lock))
		if !it.Clickable {
			line = dimStyle.Render(line)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintln(w, dimStyle.Render("open <n> to read an entry"))
}

func renderDetail(w io.Writer, d *services.Detail) {
	fmt.Fprintln(w, headingStyle.Render(d.Entry.Title))
	switch d.View.Decision {
	case gate.Reveal:
		fmt.Fprintln(w, contentStyle.Render(d.View.Content))
	case gate.Placeholder:
		fmt.Fprintln(w, contentStyle.Render(dimStyle.Render(d.View.Content)))
	case gate.Challenge:
		fmt.Fprintln(w, contentStyle.Render(lockStyle.Render("This entry is locked.")))
	}
}

func renderMemoPage(w io.Writer, p *services.MemoPage) {
	chips := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		if t == p.Selected {
			chips[i] = selectedStyle.Render(t)
			continue
		}
		chips[i] = tagStyle.Render(t)
	}
	fmt.Fprintln(w, headingStyle.Render("MEMOS"))
	fmt.Fprintln(w, strings.Join(chips, "  "))
	fmt.Fprintln(w, dimStyle.Render(memoCounter(len(p.Memos), p.Hidden)))

	for _, m := range p.Memos {
		renderMemo(w, m)
	}
}

func memoCounter(shown, hidden int) string {
	s := fmt.Sprintf("%d memos", shown)
	if hidden > 0 {
		s += fmt.Sprintf(" (+%d hidden)", hidden)
	}
	return s
}

func renderMemo(w io.Writer, m models.Memo) {
	fmt.Fprintf(w, "\n%s %s\n", titleStyle.Render(m.Title), renderTags(m.TagList()))
	if m.Link != "" {
		fmt.Fprintln(w, contentStyle.Render(m.Link))
	}
	if m.Memo != "" {
		fmt.Fprintln(w, contentStyle.Render(m.Memo))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderEntryRows(w io.Writer, rows []models.ArchiveEntry) {
	fmt.Fprintln(w, headingStyle.Render("ENTRIES"))
	for _, e := range rows {
		fmt.Fprintf(w, "  %s  %4d  secret=%-3s  %s\n", e.ID, e.SortOrder, yesNo(e.IsSecret), e.Title)
	}
}

func renderMemoRows(w io.Writer, rows []models.Memo) {
	fmt.Fprintln(w, headingStyle.Render("MEMOS"))
	for _, m := range rows {
		fmt.Fprintf(w, "  %s  secret=%-3s  %s %s\n", m.ID, yesNo(m.IsSecret), m.Title, dimStyle.Render(m.Tags))
	}
}

func renderContactRows(w io.Writer, rows []models.Contact) {
	fmt.Fprintln(w, headingStyle.Render("CONTACTS"))
	for _, c := range rows {
		fmt.Fprintf(w, "  %s  %4d  active=%-3s  %s %s\n", c.ID, c.SortOrder, yesNo(c.IsActive), c.LinkURL, dimStyle.Render(c.ImageURL))
	}
}
