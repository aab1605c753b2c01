package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
	"github.com/tartampluch/go-clock/internal/server"
)

// Options carries command line overrides. Empty fields defer to preferences.
type Options struct {
	Timezone    string
	Show        string
	TimePattern string
	DatePattern string
	Serve       bool
	Port        string
}

// ClockApp encapsulates the UI state, preferences, and the display loop.
type ClockApp struct {
	App            fyne.App
	Window         fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context
	Options        Options

	Clock      engine.Clock    // Injected clock for testability
	DefaultLoc *time.Location // Zone used when no timezone is configured
	Source     *engine.TimeSource
	Loop       *engine.Loop
	Piece      *TimePiece
	Server     *server.StatusServer

	SupportedLanguages []string

	titleLabel  *widget.Label
	themeButton *widget.Button
	aboutButton *widget.Button
	setButton   *widget.Button
}

// NewClockApp constructs the application and wires dependencies.
func NewClockApp(a fyne.App, ctx context.Context, opts Options) *ClockApp {
	return &ClockApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Options:            opts,
		Clock:              engine.RealClock{}, // Default to real clock in production
		DefaultLoc:         time.Local,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Setup builds the time source, the loop and the main window without
// showing anything. Run calls it; tests call it directly.
func (app *ClockApp) Setup() {
	app.Source = engine.NewTimeSource(app.Clock, app.DefaultLoc)
	app.SetupI18n()
	app.applyTimezone()

	app.Piece = NewTimePiece(app.showMode())

	displays := engine.Displays{app.Piece}
	if app.serverEnabled() {
		app.Server = server.NewStatusServer(app.serverPort())
		app.Server.Extractor = engine.NewExtractor(app.Source)
		displays = append(displays, app.Server)
	}

	timePattern, datePattern := app.patterns()
	app.Loop = engine.NewLoop(app.Source, displays, timePattern, datePattern)

	app.App.Settings().SetTheme(newClockTheme(app.themeMode()))
	app.buildMainWindow()
}

// Run launches the status server, the display loop and the UI event loop.
// It blocks until the main window is closed.
func (app *ClockApp) Run() {
	app.Setup()

	ctx, cancel := context.WithCancel(app.Ctx)
	defer cancel()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	// Run logs its own failure; the clock then simply stops updating.
	go func() { _ = app.Loop.Run(ctx) }()

	app.Window.ShowAndRun()
}

// buildMainWindow assembles the app bar and the time piece.
func (app *ClockApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.titleLabel = widget.NewLabelWithStyle(app.GetMsg(config.TKeyWinTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true, Italic: true})

	mode := app.themeMode()
	app.themeButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnTheme), themeIcon(mode), app.ToggleTheme)
	app.aboutButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAbout), theme.InfoIcon(), app.ShowAbout)
	app.setButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	appBar := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewIcon(theme.HistoryIcon()), app.titleLabel),
		container.NewHBox(app.themeButton, app.aboutButton, app.setButton),
	)

	w.SetContent(container.NewBorder(
		container.NewVBox(appBar, widget.NewSeparator()),
		nil, nil, nil,
		app.Piece.CanvasObject(),
	))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
}

// ToggleTheme switches between light and dark and persists the choice.
func (app *ClockApp) ToggleTheme() {
	old := app.themeMode()
	mode := otherThemeMode(old)
	app.Preferences.SetString(config.PrefTheme, mode)
	app.App.Settings().SetTheme(newClockTheme(mode))

	if app.themeButton != nil {
		app.themeButton.SetIcon(themeIcon(mode))
	}

	slog.Info(config.MsgThemeChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyOld, old,
		config.LogKeyNew, mode)
}

// AboutText returns the localized credits line.
func (app *ClockApp) AboutText() string {
	return localize(app.Localizer, &i18n.LocalizeConfig{
		MessageID:    config.TKeyAboutBody,
		TemplateData: map[string]interface{}{"Author": config.AppAuthor, "Version": config.Version},
	}, fmt.Sprintf(config.FallbackAbout, config.AppAuthor, config.Version))
}

// ShowAbout displays the credits dialog.
func (app *ClockApp) ShowAbout() {
	dialog.ShowInformation(app.GetMsg(config.TKeyAboutTitle), app.AboutText(), app.Window)
}

// ApplyPreferences pushes saved settings into the running source, loop and
// widgets. Server settings take effect on the next start.
func (app *ClockApp) ApplyPreferences() {
	app.UpdateLocalizer()
	app.applyTimezone()
	app.Loop.SetPatterns(app.patterns())
	app.Piece.SetShow(app.showMode())
	app.refreshLabels()
}

// refreshLabels updates localized labels of the main window.
func (app *ClockApp) refreshLabels() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.titleLabel.SetText(app.GetMsg(config.TKeyWinTitle))
	app.themeButton.SetText(app.GetMsg(config.TKeyBtnTheme))
	app.aboutButton.SetText(app.GetMsg(config.TKeyBtnAbout))
	app.setButton.SetText(app.GetMsg(config.TKeyBtnSettings))
}

// applyTimezone configures the source from the override or preference.
// A stored zone that no longer resolves falls back to the default zone.
func (app *ClockApp) applyTimezone() {
	tz := app.Options.Timezone
	if tz == "" {
		tz = app.Preferences.String(config.PrefTimezone)
	}
	if _, err := app.Source.SetTimezone(tz); err != nil {
		slog.Warn(config.ErrPrefTimezone,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyTimezone, tz,
			config.LogKeyError, err)
		_, _ = app.Source.SetTimezone("")
	}
}

// patterns returns the time and date patterns, validated.
func (app *ClockApp) patterns() (string, string) {
	f := app.Source.Formatter()

	timePattern := app.Options.TimePattern
	if timePattern == "" {
		timePattern = app.Preferences.StringWithFallback(config.PrefTimePattern, config.DisplayTimePattern)
	}
	if err := f.Validate(timePattern); err != nil {
		slog.Warn(config.ErrPrefTimePattern,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPattern, timePattern,
			config.LogKeyError, err)
		timePattern = config.DisplayTimePattern
	}

	datePattern := app.Options.DatePattern
	if datePattern == "" {
		datePattern = app.Preferences.StringWithFallback(config.PrefDatePattern, config.DisplayDatePattern)
	}
	if err := f.Validate(datePattern); err != nil {
		slog.Warn(config.ErrPrefDatePattern,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPattern, datePattern,
			config.LogKeyError, err)
		datePattern = config.DisplayDatePattern
	}

	return timePattern, datePattern
}

func (app *ClockApp) showMode() string {
	if app.Options.Show != "" {
		return app.Options.Show
	}
	return app.Preferences.StringWithFallback(config.PrefShow, config.DefaultShow)
}

func (app *ClockApp) themeMode() string {
	return app.Preferences.StringWithFallback(config.PrefTheme, config.DefaultTheme)
}

func (app *ClockApp) serverEnabled() bool {
	return app.Options.Serve || app.Preferences.Bool(config.PrefServerEnabled)
}

func (app *ClockApp) serverPort() string {
	if app.Options.Port != "" {
		return app.Options.Port
	}
	return app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)
}
