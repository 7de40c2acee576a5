package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jroimartin/gocui"

	"graphex/internal/explorer"
	"graphex/internal/graph"
	"graphex/internal/model"
)

const suggestionRows = 8

func (a *App) layoutExplorer(maxX, maxY int) error {
	keep := []string{"selectors", "url", "suggestions", "headers", "body"}
	if a.editing {
		keep = append(keep, "edit")
	}
	a.clearMainViews(keep)

	if v, err := a.g.SetView("selectors", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Request"
	}
	if v, err := a.g.SetView("url", 0, 4, maxX-1, 6); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Endpoint URL"
		v.Editable = true
		v.Editor = urlEditor{app: a}
		a.urlStale = true
	}

	top := 6
	bottom := maxY - 3
	sugBottom := top + suggestionRows + 1
	if sugBottom > bottom-6 {
		sugBottom = top + (bottom-top)/3
	}
	headersBottom := sugBottom + (bottom-sugBottom)/2

	if v, err := a.g.SetView("suggestions", 0, top, maxX-1, sugBottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Suggestions"
		v.Highlight = true
	}
	if v, err := a.g.SetView("headers", 0, sugBottom, maxX-1, headersBottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Headers"
		v.Highlight = true
	}
	if v, err := a.g.SetView("body", 0, headersBottom, maxX-1, bottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Body"
		v.Wrap = true
	}

	a.renderExplorer()
	a.updatePanelColors()

	if a.editing {
		if _, err := a.g.View("edit"); err == nil {
			_, _ = a.g.SetViewOnTop("edit")
			_, _ = a.g.SetCurrentView("edit")
		}
		return nil
	}
	if _, err := a.g.SetCurrentView(a.pane.viewName()); err != nil {
		return err
	}
	return nil
}

func (a *App) updatePanelColors() {
	for _, p := range []focusPane{paneSuggestions, paneHeaders} {
		v, err := a.g.View(p.viewName())
		if err != nil {
			continue
		}
		if a.pane == p && !a.editing {
			v.SelBgColor = gocui.ColorGreen
			v.SelFgColor = gocui.ColorBlack
		} else {
			v.SelBgColor = gocui.ColorDefault
			v.SelFgColor = gocui.ColorDefault
		}
	}
}

func (a *App) renderExplorer() {
	if a.g == nil {
		return
	}
	if v, err := a.g.View("selectors"); err == nil {
		v.Clear()
		fmt.Fprint(v, a.selectorLine())
	}
	if v, err := a.g.View("url"); err == nil && a.urlStale {
		v.Clear()
		fmt.Fprint(v, a.endpointURL)
		placeCursorAtEnd(v, len(a.endpointURL))
		a.urlStale = false
	}
	if v, err := a.g.View("suggestions"); err == nil {
		v.Clear()
		fmt.Fprint(v, strings.Join(a.suggestionLines(), "\n"))
		_ = v.SetCursor(0, a.suggestionSel)
	}
	if v, err := a.g.View("headers"); err == nil {
		v.Clear()
		fmt.Fprint(v, strings.Join(a.headerLines(), "\n"))
		_ = v.SetCursor(0, a.headerSel)
	}
	if v, err := a.g.View("body"); err == nil {
		v.Clear()
		state := a.ctrl.State()
		switch {
		case state.RequestBody != "":
			fmt.Fprint(v, state.RequestBody)
		case explorer.MethodNeedsBody(state.SelectedOption):
			fmt.Fprint(v, colorDim+"(empty - enter: edit inline   e: $EDITOR)"+colorReset)
		default:
			fmt.Fprint(v, colorDim+"(not sent with "+string(state.SelectedOption)+")"+colorReset)
		}
	}
}

func placeCursorAtEnd(v *gocui.View, n int) {
	w, _ := v.Size()
	if w <= 0 {
		return
	}
	if n >= w {
		_ = v.SetOrigin(n-w+1, 0)
		_ = v.SetCursor(w-1, 0)
		return
	}
	_ = v.SetOrigin(0, 0)
	_ = v.SetCursor(n, 0)
}

func (a *App) selectorLine() string {
	var sb strings.Builder
	for i, m := range model.Methods {
		if i == a.methodIdx {
			sb.WriteString("[" + colorizeMethod(string(m)) + "]")
		} else {
			sb.WriteString(" " + colorDim + padRight(string(m), 6) + colorReset + " ")
		}
	}
	if !a.methodEnabled {
		sb.WriteString(colorDim + " (locked, no token)" + colorReset)
	}

	sb.WriteString("   version:")
	for i, label := range a.versionLabels {
		if i == a.versionIdx {
			sb.WriteString(" [" + colorGreen + label + colorReset + "]")
		} else {
			sb.WriteString("  " + colorDim + label + colorReset + " ")
		}
	}

	if a.ctrl.State().RequestInProgress {
		sb.WriteString("   " + colorYellow + "running..." + colorReset)
	}
	return sb.String()
}

func (a *App) suggestionLines() []string {
	if len(a.suggestions) == 0 {
		return []string{colorDim + "(no suggestions)" + colorReset}
	}
	lines := make([]string, len(a.suggestions))
	for i, s := range a.suggestions {
		lines[i] = highlightPathParams(graph.ShortURL(s, a.cfg.BaseURL, len(a.endpointURL)))
	}
	return lines
}

func (a *App) headerLines() []string {
	headers := a.ctrl.State().Headers
	if len(headers) == 0 {
		return []string{colorDim + "(none - a: add)" + colorReset}
	}
	lines := make([]string, len(headers))
	for i, h := range headers {
		mark := "[ ]"
		if h.Enabled {
			mark = "[x]"
		}
		line := mark + " " + formatHeaderLine(h)
		if h.Readonly {
			line += colorDim + " (read-only)" + colorReset
		}
		lines[i] = line
	}
	return lines
}

func (a *App) refreshSuggestions() {
	a.suggestions = a.ctrl.Suggestions()
	if a.suggestionSel >= len(a.suggestions) {
		a.suggestionSel = 0
	}
}

// urlEdited feeds text typed into the url view back into the controller.
func (a *App) urlEdited(text string) {
	// already on screen; only a rewrite by the controller needs a redraw
	a.endpointURL = text
	a.ctrl.SetEndpointURL(text)
	a.refreshSuggestions()
}

func (a *App) cycleMethod(delta int) {
	if !a.methodEnabled {
		a.errorMsg = "method is locked to GET without a token (--token)"
		return
	}
	idx := cycleIndex(a.methodIdx, delta, len(model.Methods))
	m := string(model.Methods[idx])
	a.ctrl.HandleSelection(explorer.SelectionChanged{Kind: explorer.SelectMethod, ID: m, Label: m})
}

// cycleVersion moves the version selector, skipping an Other slot that has
// never held a custom token.
func (a *App) cycleVersion(delta int) {
	n := len(a.versionLabels)
	if n == 0 {
		return
	}
	idx := a.versionIdx
	for range n {
		idx = cycleIndex(idx, delta, n)
		if a.versionLabels[idx] != model.VersionOther {
			break
		}
	}
	if a.versionLabels[idx] == model.VersionOther {
		return
	}
	a.ctrl.HandleSelection(explorer.SelectionChanged{
		Kind:  explorer.SelectVersion,
		ID:    strconv.Itoa(idx),
		Label: a.versionLabels[idx],
	})
	a.refreshSuggestions()
}

func (a *App) acceptSuggestion() {
	if a.suggestionSel < 0 || a.suggestionSel >= len(a.suggestions) {
		return
	}
	a.ctrl.SetEndpointURL(a.suggestions[a.suggestionSel])
	a.refreshSuggestions()
	a.pane = paneURL
}

func (a *App) addHeader(line string) error {
	h, err := parseHeaderLine(line)
	if err != nil {
		return err
	}
	headers := append(a.ctrl.State().Headers, h)
	a.ctrl.SetHeaders(headers)
	a.headerSel = len(headers) - 1
	return nil
}

func (a *App) updateHeader(i int, line string) error {
	headers := a.ctrl.State().Headers
	if i < 0 || i >= len(headers) || headers[i].Readonly {
		return nil
	}
	h, err := parseHeaderLine(line)
	if err != nil {
		return err
	}
	h.Enabled = headers[i].Enabled
	headers[i] = h
	a.ctrl.SetHeaders(headers)
	return nil
}

func (a *App) toggleHeader(i int) {
	headers := a.ctrl.State().Headers
	if i < 0 || i >= len(headers) || headers[i].Readonly {
		return
	}
	headers[i].Enabled = !headers[i].Enabled
	a.ctrl.SetHeaders(headers)
}

func (a *App) deleteHeader(i int) {
	headers := a.ctrl.State().Headers
	if i < 0 || i >= len(headers) || headers[i].Readonly {
		return
	}
	headers = append(headers[:i], headers[i+1:]...)
	a.ctrl.SetHeaders(headers)
	if a.headerSel >= len(headers) && a.headerSel > 0 {
		a.headerSel--
	}
}

func (a *App) methodKey(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenExplorer || a.editing {
			return nil
		}
		a.cycleMethod(delta)
		return nil
	}
}

func (a *App) versionKey(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenExplorer || a.editing {
			return nil
		}
		a.cycleVersion(delta)
		return nil
	}
}

func (a *App) tabPane(*gocui.Gui, *gocui.View) error {
	if a.scr != screenExplorer || a.editing {
		return nil
	}
	for i, p := range explorerPanes {
		if p == a.pane {
			a.pane = explorerPanes[(i+1)%len(explorerPanes)]
			break
		}
	}
	return nil
}

func (a *App) focusPane(p focusPane) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.pane = p
		return nil
	}
}

func (a *App) moveSuggestion(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if delta < 0 && a.suggestionSel == 0 {
			a.pane = paneURL
			return nil
		}
		a.suggestionSel = clamp(a.suggestionSel+delta, len(a.suggestions))
		return nil
	}
}

func (a *App) acceptSuggestionKey(*gocui.Gui, *gocui.View) error {
	a.acceptSuggestion()
	return nil
}

func (a *App) moveHeader(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.headerSel = clamp(a.headerSel+delta, len(a.ctrl.State().Headers))
		return nil
	}
}

func (a *App) toggleHeaderKey(*gocui.Gui, *gocui.View) error {
	a.toggleHeader(a.headerSel)
	return nil
}

func (a *App) deleteHeaderKey(*gocui.Gui, *gocui.View) error {
	a.deleteHeader(a.headerSel)
	return nil
}

func cycleIndex(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
