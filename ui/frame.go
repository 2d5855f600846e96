package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/MarkAC007/iphone-browser-emulator/device"
	"github.com/MarkAC007/iphone-browser-emulator/viewport"
)

// Chassis metrics in logical pixels, scaled with the screen.
const (
	framePadding   = 24.0 // breathing room around the chassis
	bezelThickness = 14.0
	foreheadHeight = 72.0 // top/bottom bezel on home-button devices
	islandWidth    = 125.0
	islandHeight   = 37.0
	islandTop      = 11.0
	notchWidth     = 162.0
	notchHeight    = 33.0
	homeBarWidth   = 134.0
	homeBarHeight  = 5.0
	homeBarBottom  = 9.0
	statusTextSize = 15.0
	statusInset    = 26.0
)

var bezelColor = color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}

// Frame renders the device chassis (bezel, cutout, status bar, home
// indicator) around the content viewport, scaled to the space the
// window gives it.
type Frame struct {
	model       device.Model
	orientation device.Orientation
	scaler      *viewport.Scaler

	bezel      *canvas.Rectangle
	screen     *canvas.Rectangle
	cutout     *canvas.Rectangle // Dynamic Island or notch
	clock      *canvas.Text
	indicators *canvas.Text
	homeBar    *canvas.Rectangle
	homeButton *canvas.Circle

	content *fyne.Container
	scroll  *container.Scroll
	root    *fyne.Container

	// OnRetry and OnOpenExternal back the actions on the error view.
	OnRetry        func()
	OnOpenExternal func()
}

// NewFrame builds a frame for the given model and orientation.
func NewFrame(model device.Model, orientation device.Orientation) *Frame {
	f := &Frame{
		model:       model,
		orientation: orientation,
		scaler:      viewport.NewScaler(framePadding),
	}

	f.bezel = canvas.NewRectangle(bezelColor)
	f.screen = canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	f.cutout = canvas.NewRectangle(bezelColor)

	f.clock = canvas.NewText("9:41", theme.Color(theme.ColorNameForeground))
	f.clock.TextStyle = fyne.TextStyle{Bold: true}
	f.indicators = canvas.NewText("5G ▮▮▮▯", theme.Color(theme.ColorNameForeground))

	f.homeBar = canvas.NewRectangle(theme.Color(theme.ColorNameForeground))
	f.homeButton = canvas.NewCircle(color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3c, A: 0xff})

	f.content = container.NewStack(placeholderView())
	f.scroll = container.NewScroll(f.content)

	f.root = container.New(&frameLayout{frame: f},
		f.bezel, f.screen, f.scroll, f.cutout,
		f.clock, f.indicators, f.homeBar, f.homeButton,
	)

	f.applyModel()
	return f
}

// Container returns the frame's root canvas object.
func (f *Frame) Container() fyne.CanvasObject {
	return f.root
}

// SetDevice switches the chassis to another model or orientation and
// triggers a relayout.
func (f *Frame) SetDevice(model device.Model, orientation device.Orientation) {
	f.model = model
	f.orientation = orientation
	f.applyModel()
	f.root.Refresh()
}

// Scale returns the current scale result, mostly for tests.
func (f *Frame) Scale() viewport.Result {
	return f.scaler.Result()
}

// applyModel syncs the scaler and per-model chrome visibility.
func (f *Frame) applyModel() {
	w, h := f.model.EffectiveSize(f.orientation)
	f.scaler.SetDevice(w, h)

	switch f.model.Notch {
	case device.NotchDynamicIsland, device.NotchClassic:
		f.cutout.Show()
	default:
		f.cutout.Hide()
	}

	if f.model.HomeButton {
		f.homeBar.Hide()
		f.homeButton.Show()
	} else {
		f.homeBar.Show()
		f.homeButton.Hide()
	}
}

// frameLayout positions the chassis pieces. Every window resize lands
// here, which is where the scaler learns the new container size.
type frameLayout struct {
	frame *Frame
}

func (l *frameLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(260, 340)
}

func (l *frameLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	f := l.frame
	f.scaler.SetContainer(float64(size.Width), float64(size.Height))
	res := f.scaler.Result()
	s := float32(res.Scale)

	screenW := float32(res.ScaledWidth)
	screenH := float32(res.ScaledHeight)

	sideBezel := float32(bezelThickness) * s
	topBezel := sideBezel
	bottomBezel := sideBezel
	if f.model.HomeButton {
		topBezel = float32(foreheadHeight) * s
		bottomBezel = topBezel
	}

	frameW := screenW + 2*sideBezel
	frameH := screenH + topBezel + bottomBezel
	x0 := (size.Width - frameW) / 2
	y0 := (size.Height - frameH) / 2

	f.bezel.CornerRadius = (float32(f.model.CornerRadius) + float32(bezelThickness)) * s
	f.bezel.Move(fyne.NewPos(x0, y0))
	f.bezel.Resize(fyne.NewSize(frameW, frameH))

	screenX := x0 + sideBezel
	screenY := y0 + topBezel
	f.screen.CornerRadius = float32(f.model.CornerRadius) * s
	f.screen.Move(fyne.NewPos(screenX, screenY))
	f.screen.Resize(fyne.NewSize(screenW, screenH))

	l.layoutCutout(screenX, screenY, screenW, screenH, s)
	l.layoutStatusBar(screenX, screenY, screenW, s)

	// Content fills the safe area.
	safe := f.model.EffectiveSafeArea(f.orientation)
	contentX := screenX + float32(safe.Left)*s
	contentY := screenY + float32(safe.Top)*s
	contentW := screenW - float32(safe.Left+safe.Right)*s
	contentH := screenH - float32(safe.Top+safe.Bottom)*s
	if contentW < 0 {
		contentW = 0
	}
	if contentH < 0 {
		contentH = 0
	}
	f.scroll.Move(fyne.NewPos(contentX, contentY))
	f.scroll.Resize(fyne.NewSize(contentW, contentH))

	// Home indicator bar, or the physical button in the chin.
	barW := float32(homeBarWidth) * s
	barH := float32(homeBarHeight) * s
	f.homeBar.CornerRadius = barH / 2
	f.homeBar.Move(fyne.NewPos(screenX+(screenW-barW)/2, screenY+screenH-float32(homeBarBottom)*s-barH))
	f.homeBar.Resize(fyne.NewSize(barW, barH))

	buttonSize := bottomBezel * 0.62
	f.homeButton.Move(fyne.NewPos(x0+(frameW-buttonSize)/2, screenY+screenH+(bottomBezel-buttonSize)/2))
	f.homeButton.Resize(fyne.NewSize(buttonSize, buttonSize))
}

// layoutCutout places the Dynamic Island or notch. In landscape the
// cutout moves to the leading edge with its axes swapped.
func (l *frameLayout) layoutCutout(screenX, screenY, screenW, screenH, s float32) {
	f := l.frame
	if f.model.Notch == device.NotchNone {
		return
	}

	cutW := float32(islandWidth) * s
	cutH := float32(islandHeight) * s
	inset := float32(islandTop) * s
	if f.model.Notch == device.NotchClassic {
		cutW = float32(notchWidth) * s
		cutH = float32(notchHeight) * s
		inset = 0 // the classic notch is flush with the screen edge
	}

	if f.orientation == device.Landscape {
		f.cutout.CornerRadius = cutH / 2
		f.cutout.Move(fyne.NewPos(screenX+inset, screenY+(screenH-cutW)/2))
		f.cutout.Resize(fyne.NewSize(cutH, cutW))
		return
	}
	f.cutout.CornerRadius = cutH / 2
	f.cutout.Move(fyne.NewPos(screenX+(screenW-cutW)/2, screenY+inset))
	f.cutout.Resize(fyne.NewSize(cutW, cutH))
}

// layoutStatusBar places the clock and the signal/battery cluster in
// the top safe area.
func (l *frameLayout) layoutStatusBar(screenX, screenY, screenW, s float32) {
	f := l.frame
	safe := f.model.EffectiveSafeArea(f.orientation)

	textSize := float32(statusTextSize) * s
	f.clock.TextSize = textSize
	f.indicators.TextSize = textSize

	barH := float32(safe.Top) * s
	if barH <= 0 {
		// Home-button devices still draw a slim status strip.
		barH = float32(24) * s
	}

	clockSize := fyne.MeasureText(f.clock.Text, textSize, f.clock.TextStyle)
	indSize := fyne.MeasureText(f.indicators.Text, textSize, f.indicators.TextStyle)

	inset := float32(statusInset) * s
	f.clock.Move(fyne.NewPos(screenX+inset, screenY+(barH-clockSize.Height)/2))
	f.clock.Resize(clockSize)
	f.indicators.Move(fyne.NewPos(screenX+screenW-inset-indSize.Width, screenY+(barH-indSize.Height)/2))
	f.indicators.Resize(indSize)
}
