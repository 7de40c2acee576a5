package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jroimartin/gocui"

	"graphex/internal/model"
)

const (
	editNewHeader = "new-header"
	editHeader    = "header"
	editBody      = "body"
)

// singleLineEditor leaves Enter to the keybindings.
type singleLineEditor struct{}

func (e singleLineEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	case key == gocui.KeyHome || key == gocui.KeyCtrlA:
		_ = v.SetOrigin(0, 0)
		_ = v.SetCursor(0, 0)
	case key == gocui.KeyEnd || key == gocui.KeyCtrlE:
		placeCursorAtEnd(v, len(viewText(v)))
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyEnter:
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	}
}

// urlEditor reports every change of the endpoint URL to the app.
type urlEditor struct {
	app *App
}

func (e urlEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	before := viewText(v)
	singleLineEditor{}.Edit(v, key, ch, mod)
	if after := viewText(v); after != before {
		e.app.urlEdited(after)
	}
}

func (a *App) beginEdit(target string) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenExplorer || a.editing {
			return nil
		}

		var title, current string
		switch target {
		case editNewHeader:
			title = " new header, Name: Value "
		case editHeader:
			headers := a.ctrl.State().Headers
			if a.headerSel >= len(headers) || headers[a.headerSel].Readonly {
				return nil
			}
			title = " header, Name: Value "
			current = formatHeaderLine(headers[a.headerSel])
		case editBody:
			title = " JSON body "
			current = compactJSON(a.ctrl.State().RequestBody)
		default:
			return nil
		}

		a.editing = true
		a.editTarget = target

		maxX, maxY := g.Size()
		width := 80
		if width > maxX-4 {
			width = maxX - 4
		}
		x0 := (maxX - width) / 2
		y0 := (maxY - 3) / 2

		if ev, err := g.SetView("edit", x0, y0, x0+width, y0+2); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			ev.Editable = true
			ev.Editor = singleLineEditor{}
			ev.BgColor = gocui.ColorBlack
			ev.FgColor = gocui.ColorWhite
		}
		if ev, err := g.View("edit"); err == nil {
			ev.Title = title + "(enter=ok, esc=cancel) "
			ev.Clear()
			fmt.Fprint(ev, current)
			placeCursorAtEnd(ev, len(current))
		}
		_, _ = g.SetViewOnTop("edit")
		_, _ = g.SetCurrentView("edit")
		return nil
	}
}

func (a *App) closeEdit() error {
	if !a.editing {
		return nil
	}
	if a.g != nil {
		if v, err := a.g.View("edit"); err == nil {
			v.Clear()
			_ = a.g.DeleteView("edit")
		}
	}
	a.editing = false
	a.editTarget = ""
	return nil
}

func (a *App) confirmEdit(_ *gocui.Gui, v *gocui.View) error {
	if !a.editing {
		return nil
	}
	if err := a.applyEdit(a.editTarget, strings.TrimSpace(viewText(v))); err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.errorMsg = ""
	return a.closeEdit()
}

func (a *App) applyEdit(target, val string) error {
	switch target {
	case editNewHeader:
		return a.addHeader(val)
	case editHeader:
		return a.updateHeader(a.headerSel, val)
	case editBody:
		body, err := normalizeJSON(val)
		if err != nil {
			return err
		}
		a.ctrl.SetRequestBody(body)
	}
	return nil
}

// editBodyInEditor leaves the main loop so Run can hand the terminal to
// $EDITOR. It refuses while a request is running.
func (a *App) editBodyInEditor(*gocui.Gui, *gocui.View) error {
	if a.scr != screenExplorer || a.editing {
		return nil
	}
	if a.ctrl.State().RequestInProgress {
		a.errorMsg = "wait for the running request before opening $EDITOR"
		return nil
	}

	seed := strings.TrimSpace(a.ctrl.State().RequestBody)
	if seed == "" {
		seed = "{}"
	}

	f, err := os.CreateTemp("", "graphex-body-*.json")
	if err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	defer f.Close()
	if _, err := f.WriteString(seed + "\n"); err != nil {
		a.errorMsg = err.Error()
		return nil
	}
	a.suspendEditorFile = f.Name()
	return gocui.ErrQuit
}

func (a *App) runExternalEditor(file string) error {
	defer os.Remove(file)

	editor := strings.TrimSpace(os.Getenv("GRAPHEX_EDITOR"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	args := strings.Fields(editor)
	if len(args) == 0 {
		args = []string{"vi"}
	}

	cmd := exec.Command(args[0], append(args[1:], file)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	body, err := normalizeJSON(string(b))
	if err != nil {
		return err
	}
	a.ctrl.SetRequestBody(body)
	return nil
}

// normalizeJSON validates raw as a single JSON value and indents it, keeping
// the field order as typed. Blank input clears the body.
func normalizeJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !json.Valid([]byte(raw)) {
		return "", fmt.Errorf("invalid json body")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return "", fmt.Errorf("invalid json body: %w", err)
	}
	return buf.String(), nil
}

func compactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return strings.TrimSpace(s)
	}
	return buf.String()
}

func parseHeaderLine(line string) (model.Header, error) {
	name, value, _ := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Header{}, fmt.Errorf("header name required, use Name: Value")
	}
	return model.Header{Name: name, Value: strings.TrimSpace(value), Enabled: true}, nil
}

func formatHeaderLine(h model.Header) string {
	return h.Name + ": " + h.Value
}
