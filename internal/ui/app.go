package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jroimartin/gocui"

	"graphex/internal/catalog"
	"graphex/internal/config"
	"graphex/internal/explorer"
	"graphex/internal/httpclient"
	"graphex/internal/model"
)

type screen int

const (
	screenExplorer screen = iota
	screenCatalog
	screenResponse
)

type focusPane int

const (
	paneURL focusPane = iota
	paneSuggestions
	paneHeaders
	paneBody
)

var explorerPanes = []focusPane{paneURL, paneSuggestions, paneHeaders, paneBody}

func (p focusPane) viewName() string {
	switch p {
	case paneSuggestions:
		return "suggestions"
	case paneHeaders:
		return "headers"
	case paneBody:
		return "body"
	default:
		return "url"
	}
}

// App is the terminal front end of the explorer. It implements
// explorer.View and explorer.QueryRunner; all of its state is touched from
// the gocui main loop only.
type App struct {
	// gMu guards g against query workers posting results while Run swaps
	// the Gui.
	gMu sync.Mutex
	g   *gocui.Gui

	cfg    *config.Config
	logger *slog.Logger

	catalog *catalog.Catalog
	ctrl    *explorer.Controller
	runner  *httpclient.Runner
	spawn   func(func())

	scr  screen
	pane focusPane

	// mirrored from the controller
	methodIdx     int
	methodEnabled bool
	versionIdx    int
	versionLabels []string
	endpointURL   string
	urlStale      bool

	suggestions   []string
	suggestionSel int
	headerSel     int

	filter   string
	filtered []int
	selected int

	editing    bool
	editTarget string

	suspendEditorFile string

	lastReq  httpclient.RequestSpec
	lastRes  httpclient.Result
	errorMsg string
}

// NewApp wires the explorer controller to the terminal views. cfg must be
// normalized.
func NewApp(cfg *config.Config, cat *catalog.Catalog, logger *slog.Logger) *App {
	if cat == nil {
		cat = catalog.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &App{
		cfg:           cfg,
		logger:        logger,
		catalog:       cat,
		scr:           screenExplorer,
		versionLabels: append([]string(nil), cfg.Versions...),
		spawn:         func(f func()) { go f() },
	}
	a.runner = &httpclient.Runner{Token: cfg.Token, Logger: logger, Done: a.queryDone}
	a.ctrl = explorer.NewController(explorer.Options{
		BaseURL:       cfg.BaseURL,
		Versions:      cfg.Versions,
		Authenticated: cfg.Token != "",
	}, cat, a, a, logger)

	version := cfg.DefaultVersion()
	a.ctrl.Apply(model.ExplorerValues{
		EndpointURL:     cfg.BaseURL + "/" + version + "/me",
		SelectedOption:  model.MethodGet,
		SelectedVersion: version,
	})
	a.refreshSuggestions()
	return a
}

func (a *App) SelectMethod(index int) { a.methodIdx = index }

func (a *App) SelectVersion(index int, label string) {
	a.versionIdx = index
	if index >= 0 && index < len(a.cfg.Versions) && a.cfg.Versions[index] == model.VersionOther {
		a.versionLabels[index] = label
	}
}

func (a *App) SetEndpointURL(url string) {
	if url != a.endpointURL {
		a.endpointURL = url
		a.urlStale = true
	}
}

func (a *App) SetMethodEnabled(enabled bool) { a.methodEnabled = enabled }

// ExecuteExplorerQuery runs the request off the UI loop; the outcome comes
// back through queryDone.
func (a *App) ExecuteExplorerQuery(ctx context.Context, v model.ExplorerValues) {
	a.spawn(func() { a.runner.ExecuteExplorerQuery(ctx, v) })
}

func (a *App) queryDone(spec httpclient.RequestSpec, res httpclient.Result, err error) {
	a.onUI(func() {
		a.ctrl.CompleteRequest()
		a.lastReq = spec
		if err != nil {
			a.errorMsg = err.Error()
			return
		}
		a.lastRes = res
		a.errorMsg = ""
		a.scr = screenResponse
	})
}

func (a *App) onUI(f func()) {
	a.gMu.Lock()
	g := a.g
	a.gMu.Unlock()
	if g == nil {
		f()
		return
	}
	g.Update(func(*gocui.Gui) error {
		f()
		return nil
	})
}

func (a *App) Run() error {
	// gocui has no suspend/resume, so editing the body in $EDITOR leaves the
	// main loop, runs the editor and builds a fresh GUI.
	for {
		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		a.gMu.Lock()
		a.g = g
		a.gMu.Unlock()

		g.BgColor = gocui.ColorBlack
		g.FgColor = gocui.ColorWhite
		g.Cursor = true
		g.InputEsc = true
		g.SetManagerFunc(a.layout)

		// views are recreated, so the url view must be refilled
		a.urlStale = true

		if err := a.bindKeys(); err != nil {
			g.Close()
			return err
		}

		err = g.MainLoop()
		g.Close()

		if a.suspendEditorFile != "" {
			file := a.suspendEditorFile
			a.suspendEditorFile = ""
			if err := a.runExternalEditor(file); err != nil {
				a.errorMsg = err.Error()
			}
			continue
		}

		if err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	}
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderHeader()

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderFooter()

	switch a.scr {
	case screenExplorer:
		return a.layoutExplorer(maxX, maxY)
	case screenCatalog:
		return a.layoutCatalog(maxX, maxY)
	case screenResponse:
		return a.layoutResponse(maxX, maxY)
	default:
		return nil
	}
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{"header": true, "footer": true}
	for _, k := range keep {
		keepSet[k] = true
	}

	for _, n := range []string{"selectors", "url", "suggestions", "headers", "body", "edit", "filter", "catalog", "response"} {
		if keepSet[n] {
			continue
		}
		if v, err := a.g.View(n); err == nil {
			v.Clear()
			_ = a.g.DeleteView(n)
		}
	}
}

func (a *App) bindKeys() error {
	g := a.g
	type binding struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}

	bindings := []binding{
		{"", gocui.KeyCtrlC, a.forceQuit},
		{"", 'q', a.quit},
		{"", gocui.KeyEsc, a.back},
		{"", gocui.KeyTab, a.tabPane},
		{"", gocui.KeyCtrlR, a.submit},
		{"", gocui.KeyCtrlL, a.openCatalog},
		{"", gocui.KeyF2, a.methodKey(1)},
		{"", gocui.KeyF3, a.versionKey(1)},

		{"url", gocui.KeyEnter, a.submit},
		{"url", gocui.KeyArrowDown, a.focusPane(paneSuggestions)},

		{"suggestions", gocui.KeyArrowDown, a.moveSuggestion(1)},
		{"suggestions", gocui.KeyArrowUp, a.moveSuggestion(-1)},
		{"suggestions", gocui.KeyEnter, a.acceptSuggestionKey},

		{"headers", gocui.KeyArrowDown, a.moveHeader(1)},
		{"headers", gocui.KeyArrowUp, a.moveHeader(-1)},
		{"headers", 'a', a.beginEdit(editNewHeader)},
		{"headers", gocui.KeyEnter, a.beginEdit(editHeader)},
		{"headers", gocui.KeySpace, a.toggleHeaderKey},
		{"headers", 'd', a.deleteHeaderKey},

		{"body", gocui.KeyEnter, a.beginEdit(editBody)},
		{"body", 'e', a.editBodyInEditor},

		{"edit", gocui.KeyEnter, a.confirmEdit},

		{"catalog", gocui.KeyArrowDown, a.moveSel(1)},
		{"catalog", gocui.KeyArrowUp, a.moveSel(-1)},
		{"catalog", gocui.KeyEnter, a.pickCatalogEntry},
		{"catalog", gocui.KeyBackspace, a.filterBackspace},
		{"catalog", gocui.KeyBackspace2, a.filterBackspace},
		{"catalog", gocui.KeySpace, a.appendFilterRune(' ')},

		{"response", gocui.KeyArrowDown, a.scrollResponse(1)},
		{"response", gocui.KeyArrowUp, a.scrollResponse(-1)},
		{"response", 'r', a.submit},
	}
	for r := rune(33); r <= rune(126); r++ {
		bindings = append(bindings, binding{"catalog", r, a.appendFilterRune(r)})
	}

	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return fmt.Errorf("bind %v on %q: %w", b.key, b.view, err)
		}
	}
	return nil
}

func (a *App) forceQuit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

// quit ignores q while it is being typed into the catalog filter.
func (a *App) quit(*gocui.Gui, *gocui.View) error {
	if a.scr == screenCatalog || a.editing {
		return nil
	}
	return gocui.ErrQuit
}

func (a *App) back(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return a.closeEdit()
	}
	switch a.scr {
	case screenCatalog, screenResponse:
		a.scr = screenExplorer
		a.urlStale = true
	case screenExplorer:
		a.pane = paneURL
	}
	a.errorMsg = ""
	return nil
}

func (a *App) submit(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	if !a.ctrl.Submit(context.Background()) {
		a.errorMsg = "a request is already running"
		return nil
	}
	a.errorMsg = ""
	return nil
}
