package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MarkAC007/iphone-browser-emulator/nav"
	"github.com/MarkAC007/iphone-browser-emulator/network"
)

// ShowPage replaces the screen content with a text preview of the page.
func (f *Frame) ShowPage(page *network.Page) {
	title := widget.NewLabel(page.Title)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Wrapping = fyne.TextWrapWord

	body := widget.NewLabel(page.Text)
	body.Wrapping = fyne.TextWrapWord

	meta := fmt.Sprintf("%d · %s", page.StatusCode, page.FinalURL)
	if page.Cached {
		meta += " · cached"
	}
	metaLabel := widget.NewLabel(meta)
	metaLabel.TextStyle = fyne.TextStyle{Italic: true}
	metaLabel.Wrapping = fyne.TextWrapBreak

	f.setContent(container.NewVBox(title, widget.NewSeparator(), body, widget.NewSeparator(), metaLabel))
}

// ShowError replaces the screen content with an error view. Recoverable
// failures get a Retry action; pages that refuse embedding also get a
// shortcut to the system browser.
func (f *Frame) ShowError(navErr *nav.Error) {
	icon := widget.NewIcon(theme.ErrorIcon())

	title := widget.NewLabel(errorTitle(navErr.Kind))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	message := widget.NewLabel(navErr.Message)
	message.Wrapping = fyne.TextWrapWord
	message.Alignment = fyne.TextAlignCenter

	items := []fyne.CanvasObject{icon, title, message}
	if navErr.Recoverable() {
		items = append(items, widget.NewButton("Retry", func() {
			if f.OnRetry != nil {
				f.OnRetry()
			}
		}))
	}
	if navErr.Kind == nav.KindBlocked || navErr.Kind == nav.KindCORS {
		items = append(items, widget.NewButton("Open in Browser", func() {
			if f.OnOpenExternal != nil {
				f.OnOpenExternal()
			}
		}))
	}

	f.setContent(container.NewVBox(layoutSpacer(), container.NewVBox(items...), layoutSpacer()))
}

// ShowLoading replaces the screen content with a loading indicator.
func (f *Frame) ShowLoading(urlStr string) {
	spinner := widget.NewProgressBarInfinite()
	label := widget.NewLabel("Loading " + nav.Hostname(urlStr))
	label.Alignment = fyne.TextAlignCenter

	f.setContent(container.NewVBox(layoutSpacer(), spinner, label, layoutSpacer()))
}

func (f *Frame) setContent(view fyne.CanvasObject) {
	f.content.Objects = []fyne.CanvasObject{view}
	f.content.Refresh()
	f.scroll.ScrollToTop()
}

func placeholderView() fyne.CanvasObject {
	label := widget.NewLabel("Enter a URL to begin")
	label.Alignment = fyne.TextAlignCenter
	return container.NewVBox(layoutSpacer(), label, layoutSpacer())
}

func layoutSpacer() fyne.CanvasObject {
	return widget.NewLabel("")
}

func errorTitle(kind nav.Kind) string {
	switch kind {
	case nav.KindInvalidURL:
		return "Invalid Address"
	case nav.KindBlocked:
		return "Page Refused to Load"
	case nav.KindCORS:
		return "Access Denied"
	case nav.KindTimeout:
		return "Request Timed Out"
	case nav.KindSSL:
		return "Connection Not Secure"
	case nav.KindNetwork:
		return "Cannot Reach Page"
	default:
		return "Something Went Wrong"
	}
}
