package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jroimartin/gocui"
)

// ansi colors
const (
	colorDim     = "\033[90m"
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

var pathParamRe = regexp.MustCompile(`\{([^}]+)\}`)

func (a *App) renderHeader() {
	v, err := a.g.View("header")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprintf(v, "%sgraphex%s  -  %s  (%d catalog urls)", colorGreen, colorReset, a.cfg.BaseURL, a.catalog.Len())
}

func (a *App) renderFooter() {
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	msg := a.errorMsg
	if msg != "" {
		fmt.Fprint(v, colorRed+msg+colorReset)
		return
	}
	if a.editing {
		msg = "enter: save   esc: cancel"
	} else {
		switch a.scr {
		case screenExplorer:
			msg = "tab: pane   f2: method   f3: version   enter/ctrl+r: run   ctrl+l: catalog   esc: back   ctrl+c: quit"
			switch a.pane {
			case paneSuggestions:
				msg = "up/down: select   enter: use url   " + msg
			case paneHeaders:
				msg = "a: add   enter: edit   space: toggle   d: delete   " + msg
			case paneBody:
				msg = "enter: edit inline   e: edit in $EDITOR   " + msg
			}
		case screenCatalog:
			msg = "type: filter   up/down: select   enter: use url   esc: back"
		case screenResponse:
			msg = "up/down: scroll   r: run again   esc: back   q: quit"
		}
	}
	fmt.Fprint(v, msg)
}

func viewText(v *gocui.View) string {
	// gocui includes a trailing newline
	return strings.TrimSuffix(v.Buffer(), "\n")
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func colorizeMethod(method string) string {
	var color string
	switch strings.ToUpper(method) {
	case "GET":
		color = colorBlue
	case "POST":
		color = colorGreen
	case "PUT":
		color = colorYellow
	case "DELETE":
		color = colorRed
	case "PATCH":
		color = colorCyan
	case "HEAD":
		color = colorMagenta
	default:
		color = colorReset
	}
	return color + padRight(method, 6) + colorReset
}

func colorizeStatus(status string) string {
	parts := strings.Fields(status)
	if len(parts) == 0 {
		return status
	}
	code, err := strconv.Atoi(parts[0])
	if err != nil {
		return status
	}
	var color string
	switch {
	case code >= 200 && code < 300:
		color = colorGreen
	case code >= 400 && code < 500:
		color = colorYellow
	case code >= 500:
		color = colorRed
	default:
		color = colorReset
	}
	return color + status + colorReset
}

func highlightPathParams(path string) string {
	return pathParamRe.ReplaceAllString(path, colorCyan+"{$1}"+colorReset)
}
