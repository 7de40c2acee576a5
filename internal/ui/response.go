package ui

import (
	"fmt"
	"sort"

	"github.com/jroimartin/gocui"
)

func (a *App) layoutResponse(maxX, maxY int) error {
	a.clearMainViews([]string{"response"})

	if v, err := a.g.SetView("response", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Response"
		v.Wrap = false
		v.Autoscroll = false
	}
	a.renderResponse()
	if _, err := a.g.SetCurrentView("response"); err != nil {
		return err
	}
	return nil
}

func (a *App) renderResponse() {
	v, err := a.g.View("response")
	if err != nil {
		return
	}
	v.Clear()

	r := a.lastRes
	fmt.Fprintf(v, "%s  %s\n", colorizeMethod(a.lastReq.Method), a.lastReq.URL)
	fmt.Fprintf(v, "%s   %s\n", colorizeStatus(r.Status), r.Elapsed)
	if share := a.ctrl.ShareURL(); share != "" {
		fmt.Fprintf(v, "%sshare: %s%s\n", colorDim, share, colorReset)
	}
	fmt.Fprintln(v, "")

	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(v, "%s%s%s: %s\n", colorCyan, k, colorReset, r.Headers[k])
	}
	fmt.Fprintln(v, "")
	fmt.Fprintln(v, r.Body)
}

func (a *App) scrollResponse(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, v *gocui.View) error {
		if a.scr != screenResponse || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if delta > 0 {
			_ = v.SetOrigin(ox, oy+1)
		} else if oy > 0 {
			_ = v.SetOrigin(ox, oy-1)
		}
		return nil
	}
}
