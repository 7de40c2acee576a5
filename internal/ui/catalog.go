package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jroimartin/gocui"

	"graphex/internal/catalog"
)

type scoredIdx struct {
	idx   int
	score int
}

// fuzzyMatchScore returns (score, ok). Lower score is better.
// Matching is a case-insensitive subsequence match; runs of consecutive
// matches cost less than scattered ones.
func fuzzyMatchScore(needle, haystack string) (int, bool) {
	needle = strings.ToLower(needle)
	haystack = strings.ToLower(haystack)
	if needle == "" {
		return 0, true
	}

	score := 0
	j := 0
	last := -1
	for i := 0; i < len(haystack) && j < len(needle); i++ {
		if haystack[i] != needle[j] {
			continue
		}
		if last == -1 || i != last+1 {
			score += i
		}
		last = i
		j++
	}
	if j != len(needle) {
		return 0, false
	}
	return score, true
}

// filterEntries returns the indexes of entries matching needle, best first.
func filterEntries(entries []catalog.Entry, needle string) []int {
	needle = strings.TrimSpace(needle)
	out := make([]int, 0, len(entries))
	if needle == "" {
		for i := range entries {
			out = append(out, i)
		}
		return out
	}

	var scored []scoredIdx
	for i, e := range entries {
		cand := strings.Join(e.Methods, " ") + " " + e.URL + " " + e.Summary()
		if s, ok := fuzzyMatchScore(needle, cand); ok {
			scored = append(scored, scoredIdx{idx: i, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})
	for _, s := range scored {
		out = append(out, s.idx)
	}
	return out
}

func (a *App) catalogEntries() []catalog.Entry {
	return a.catalog.Entries(a.ctrl.State().SelectedVersion)
}

func (a *App) recomputeFilter() {
	a.filtered = filterEntries(a.catalogEntries(), a.filter)
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

func (a *App) openCatalog(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	a.scr = screenCatalog
	a.filter = ""
	a.selected = 0
	a.recomputeFilter()
	return nil
}

func (a *App) layoutCatalog(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "catalog"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
	}
	if v, err := a.g.SetView("catalog", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}
	a.renderCatalog()
	if _, err := a.g.SetCurrentView("catalog"); err != nil {
		return err
	}
	return nil
}

func (a *App) renderCatalog() {
	if v, err := a.g.View("filter"); err == nil {
		v.Clear()
		fmt.Fprint(v, a.filter)
	}

	v, err := a.g.View("catalog")
	if err != nil {
		return
	}
	v.Clear()
	version := a.ctrl.State().SelectedVersion
	entries := a.catalogEntries()
	v.Title = fmt.Sprintf("Catalog %s (%d/%d)", version, len(a.filtered), len(entries))
	if len(entries) == 0 {
		fmt.Fprintf(v, "no catalog for %q (load one with --spec %s=<openapi url or file>)\n", version, version)
		return
	}

	for _, idx := range a.filtered {
		e := entries[idx]
		label := e.Summary()
		if label != "" {
			label = colorDim + " - " + label + colorReset
		}
		methods := make([]string, len(e.Methods))
		for i, m := range e.Methods {
			methods[i] = colorizeMethod(m)
		}
		fmt.Fprintf(v, "%s %s%s\n", strings.Join(methods, ""), highlightPathParams(e.URL), label)
	}
	_ = v.SetCursor(0, a.selected)
}

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenCatalog {
			return nil
		}
		a.filter += string(r)
		a.recomputeFilter()
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.scr != screenCatalog || a.filter == "" {
		return nil
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
	return nil
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, v *gocui.View) error {
		if a.scr != screenCatalog || len(a.filtered) == 0 {
			return nil
		}
		a.selected = clamp(a.selected+delta, len(a.filtered))
		if v != nil {
			_ = v.SetCursor(0, a.selected)
		}
		return nil
	}
}

func (a *App) pickCatalogEntry(*gocui.Gui, *gocui.View) error {
	a.pickCatalog(a.selected)
	return nil
}

// pickCatalog loads the filtered entry at pos into the endpoint URL.
func (a *App) pickCatalog(pos int) {
	if a.scr != screenCatalog || pos < 0 || pos >= len(a.filtered) {
		return
	}
	entry := a.catalogEntries()[a.filtered[pos]]
	a.ctrl.SetEndpointURL(entry.URL)
	a.refreshSuggestions()
	a.scr = screenExplorer
	a.pane = paneURL
}
