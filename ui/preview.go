// Package ui provides the emulator chrome using Fyne: the Safari-style
// navigation bar, the device picker, and the rendered device frame.
package ui

import (
	"context"
	neturl "net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/MarkAC007/iphone-browser-emulator/device"
	"github.com/MarkAC007/iphone-browser-emulator/nav"
	"github.com/MarkAC007/iphone-browser-emulator/network"
	"github.com/MarkAC007/iphone-browser-emulator/prefs"
)

// spinnerDelay keeps fast loads from flashing a loading indicator.
const spinnerDelay = 200 * time.Millisecond

// PreviewUI is the main window: navigation chrome on top, the device
// frame below. It is the single owner of the navigation session; its
// mutex serializes the UI callbacks and load goroutines that touch it.
type PreviewUI struct {
	fyneApp fyne.App
	window  fyne.Window
	log     *zap.Logger

	session *nav.Session
	loader  *network.Loader
	store   *prefs.Store
	catalog *device.Catalog

	model       device.Model
	orientation device.Orientation

	// Navigation chrome
	backBtn    *widget.Button
	forwardBtn *widget.Button
	refreshBtn *widget.Button
	stopBtn    *widget.Button
	urlEntry   *widget.Entry
	lockIcon   *widget.Icon
	goBtn      *widget.Button
	progress   *widget.ProgressBar
	devicePick *widget.Select
	rotateBtn  *widget.Button
	themeBtn   *widget.Button

	frame *Frame

	mu         sync.Mutex
	cancelLoad context.CancelFunc
	loadSeq    int
}

// New builds the preview window from the saved preferences.
func New(loader *network.Loader, store *prefs.Store, catalog *device.Catalog, log *zap.Logger) *PreviewUI {
	a := app.New()
	w := a.NewWindow("iPhone Browser Emulator")
	w.Resize(fyne.NewSize(520, 920))

	saved := store.Snapshot()
	p := &PreviewUI{
		fyneApp:     a,
		window:      w,
		log:         log,
		session:     nav.NewSession(),
		loader:      loader,
		store:       store,
		catalog:     catalog,
		model:       catalog.Lookup(saved.Device),
		orientation: device.ParseOrientation(saved.Orientation),
	}

	p.applyTheme(saved.Theme)
	p.setupChrome()
	p.setupShortcuts()
	return p
}

// setupChrome builds the navigation bar and the frame area.
func (p *PreviewUI) setupChrome() {
	p.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), p.goBack)
	p.forwardBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), p.goForward)
	p.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), p.refresh)
	p.stopBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), p.stop)

	p.lockIcon = widget.NewIcon(theme.InfoIcon())
	p.urlEntry = widget.NewEntry()
	p.urlEntry.SetPlaceHolder("Search or enter website name")
	p.urlEntry.OnSubmitted = func(url string) {
		p.navigate(url)
	}
	p.goBtn = widget.NewButton("Go", func() {
		p.navigate(p.urlEntry.Text)
	})

	p.progress = widget.NewProgressBar()
	p.progress.Hide()

	p.devicePick = widget.NewSelect(p.catalog.Names(), p.selectDevice)
	p.devicePick.SetSelected(p.model.Name)

	p.rotateBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), p.toggleOrientation)
	p.themeBtn = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), p.toggleTheme)

	navBar := container.NewBorder(nil, nil,
		container.NewHBox(p.backBtn, p.forwardBtn, p.refreshBtn, p.stopBtn),
		container.NewHBox(p.goBtn, p.devicePick, p.rotateBtn, p.themeBtn),
		container.NewBorder(nil, nil, p.lockIcon, nil, p.urlEntry),
	)

	p.frame = NewFrame(p.model, p.orientation)
	p.frame.OnRetry = p.refresh
	p.frame.OnOpenExternal = p.openExternal

	top := container.NewVBox(navBar, p.progress)
	p.window.SetContent(container.NewBorder(top, nil, nil, nil, p.frame.Container()))

	p.updateChrome()
}

// setupShortcuts wires the keyboard shortcuts.
func (p *PreviewUI) setupShortcuts() {
	// Ctrl+L: focus the URL bar
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyL,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.window.Canvas().Focus(p.urlEntry)
		p.urlEntry.CursorColumn = len(p.urlEntry.Text)
	})

	// Ctrl+R: refresh
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.refresh()
	})

	// Alt+Left / Alt+Right: history
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyLeft,
		Modifier: fyne.KeyModifierAlt,
	}, func(_ fyne.Shortcut) {
		p.goBack()
	})
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyRight,
		Modifier: fyne.KeyModifierAlt,
	}, func(_ fyne.Shortcut) {
		p.goForward()
	})

	// Ctrl+D: next device, Ctrl+O: rotate
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyD,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.cycleDevice()
	})
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.toggleOrientation()
	})
}

// navigate pushes a URL into the session and, when it validates,
// starts the load.
func (p *PreviewUI) navigate(rawURL string) {
	p.mu.Lock()
	p.session.Navigate(rawURL)
	st := p.session.State()
	p.mu.Unlock()

	if st.Err != nil {
		p.log.Info("rejected navigation input",
			zap.String("input", rawURL), zap.String("kind", string(st.Err.Kind)))
		p.frame.ShowError(st.Err)
		p.updateChrome()
		return
	}

	p.store.AddURL(st.CurrentURL)
	p.startLoad(st.CurrentURL)
}

func (p *PreviewUI) goBack() {
	p.mu.Lock()
	before := p.session.State()
	p.session.GoBack()
	st := p.session.State()
	p.mu.Unlock()

	if st.HistoryIndex == before.HistoryIndex {
		return
	}
	p.startLoad(st.CurrentURL)
}

func (p *PreviewUI) goForward() {
	p.mu.Lock()
	before := p.session.State()
	p.session.GoForward()
	st := p.session.State()
	p.mu.Unlock()

	if st.HistoryIndex == before.HistoryIndex {
		return
	}
	p.startLoad(st.CurrentURL)
}

func (p *PreviewUI) refresh() {
	p.mu.Lock()
	p.session.Refresh()
	st := p.session.State()
	p.mu.Unlock()

	if st.CurrentURL == "" {
		return
	}
	p.startLoad(st.CurrentURL)
}

// stop cancels the in-flight load. The fetch itself is interrupted
// through the context; the session just records the user's intent.
func (p *PreviewUI) stop() {
	p.mu.Lock()
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.loadSeq++
	p.session.Stop()
	p.mu.Unlock()

	p.updateChrome()
}

// startLoad cancels any previous load and fetches urlStr on a fresh
// goroutine. The sequence number keeps a stale goroutine from applying
// its result after the user has moved on.
func (p *PreviewUI) startLoad(urlStr string) {
	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	if p.cancelLoad != nil {
		p.cancelLoad()
	}
	p.cancelLoad = cancel
	p.loadSeq++
	seq := p.loadSeq
	p.session.SetProgress(10)
	p.mu.Unlock()

	p.updateChrome()

	// Reveal the loading view only if the load outlives the delay.
	time.AfterFunc(spinnerDelay, func() {
		p.mu.Lock()
		stillLoading := seq == p.loadSeq && p.session.State().IsLoading
		p.mu.Unlock()
		if stillLoading {
			p.frame.ShowLoading(urlStr)
		}
	})

	go p.loadPage(ctx, seq, urlStr)
}

func (p *PreviewUI) loadPage(ctx context.Context, seq int, urlStr string) {
	page, navErr := p.loader.LoadPage(ctx, urlStr)

	select {
	case <-ctx.Done():
		return
	default:
	}

	p.mu.Lock()
	if seq != p.loadSeq {
		p.mu.Unlock()
		return
	}
	if navErr != nil {
		p.session.FailLoad(navErr)
	} else {
		p.session.SetPageMeta(page.Title, page.FaviconURL)
		p.session.FinishLoad()
	}
	p.mu.Unlock()

	if navErr != nil {
		p.frame.ShowError(navErr)
	} else {
		p.frame.ShowPage(page)
	}
	p.updateChrome()
}

// updateChrome recomputes every control from the session state; no
// enablement is ever cached.
func (p *PreviewUI) updateChrome() {
	p.mu.Lock()
	st := p.session.State()
	p.mu.Unlock()

	if st.CanGoBack {
		p.backBtn.Enable()
	} else {
		p.backBtn.Disable()
	}
	if st.CanGoForward {
		p.forwardBtn.Enable()
	} else {
		p.forwardBtn.Disable()
	}

	if st.IsLoading {
		p.stopBtn.Enable()
		p.refreshBtn.Disable()
		p.progress.SetValue(float64(st.LoadProgress) / 100)
		p.progress.Show()
	} else {
		p.stopBtn.Disable()
		if st.CurrentURL != "" {
			p.refreshBtn.Enable()
		} else {
			p.refreshBtn.Disable()
		}
		p.progress.Hide()
	}

	if st.CurrentURL != p.urlEntry.Text {
		p.urlEntry.SetText(st.CurrentURL)
	}
	if nav.IsSecure(st.CurrentURL) {
		p.lockIcon.SetResource(theme.ConfirmIcon())
	} else {
		p.lockIcon.SetResource(theme.WarningIcon())
	}
}

// selectDevice switches the rendered model and persists the choice.
func (p *PreviewUI) selectDevice(name string) {
	model := p.catalog.ByName(name)
	if model.ID == p.model.ID {
		return
	}
	p.model = model
	p.store.SetDevice(model.ID)
	p.frame.SetDevice(p.model, p.orientation)
	p.log.Info("device changed", zap.String("device", model.ID))
}

// cycleDevice steps to the next catalog model.
func (p *PreviewUI) cycleDevice() {
	models := p.catalog.All()
	for i, m := range models {
		if m.ID == p.model.ID {
			next := models[(i+1)%len(models)]
			p.devicePick.SetSelected(next.Name)
			return
		}
	}
}

func (p *PreviewUI) toggleOrientation() {
	p.orientation = p.orientation.Toggle()
	p.store.SetOrientation(string(p.orientation))
	p.frame.SetDevice(p.model, p.orientation)
}

func (p *PreviewUI) toggleTheme() {
	saved := p.store.Snapshot()
	next := "dark"
	if saved.Theme == "dark" {
		next = "light"
	}
	p.store.SetTheme(next)
	p.applyTheme(next)
}

func (p *PreviewUI) applyTheme(name string) {
	variant := theme.VariantLight
	if name == "dark" {
		variant = theme.VariantDark
	}
	p.fyneApp.Settings().SetTheme(&forcedVariantTheme{variant: variant})
}

// openExternal hands the current URL to the system browser, the
// escape hatch for pages that refuse to be embedded.
func (p *PreviewUI) openExternal() {
	p.mu.Lock()
	current := p.session.CurrentURL()
	p.mu.Unlock()
	if current == "" {
		return
	}
	u, err := neturl.Parse(current)
	if err != nil {
		return
	}
	if err := p.fyneApp.OpenURL(u); err != nil {
		p.log.Warn("could not open external browser", zap.Error(err))
	}
}

// ApplyPreferences re-applies externally changed preferences, called
// by the preference watcher when another process writes the file.
func (p *PreviewUI) ApplyPreferences(d prefs.Data) {
	p.applyTheme(d.Theme)
	model := p.catalog.Lookup(d.Device)
	if model.ID != p.model.ID {
		p.devicePick.SetSelected(model.Name)
	}
	if o := device.ParseOrientation(d.Orientation); o != p.orientation {
		p.orientation = o
		p.frame.SetDevice(p.model, p.orientation)
	}
}

// Navigate is the programmatic entry point, used for the initial URL.
func (p *PreviewUI) Navigate(rawURL string) {
	p.navigate(rawURL)
}

// Run shows the window and blocks until it closes.
func (p *PreviewUI) Run() {
	p.window.ShowAndRun()
}
