package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect  *widget.Select
	showSelect  *widget.Select
	tzEntry     *widget.Entry
	timeEntry   *widget.Entry
	dateEntry   *widget.Entry
	timePreview *widget.Label
	datePreview *widget.Label
	checkServer *widget.Check
	entryPort   *PortEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *ClockApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := app.buildSettingsWidgets()

	saveAction := func() {
		if err := sw.validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		app.buildGeneralCard(sw),
		app.buildDisplayCard(sw),
		app.buildServerCard(sw),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })
	w.Show()
}

// buildSettingsWidgets creates the inputs, pre-filled from preferences.
func (app *ClockApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	labels := app.showLabels()
	options := make([]string, 0, len(config.ShowModes))
	for _, mode := range config.ShowModes {
		options = append(options, labels[mode])
	}
	sw.showSelect = widget.NewSelect(options, nil)
	sw.showSelect.SetSelected(labels[app.Piece.Show()])

	sw.tzEntry = widget.NewEntry()
	sw.tzEntry.SetPlaceHolder(app.DefaultLoc.String())
	sw.tzEntry.SetText(app.Source.Timezone())
	sw.tzEntry.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := engine.LoadTimezone(s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrTimezone))
		}
		return nil
	}

	timePattern, datePattern := app.Loop.Patterns()
	sw.timePreview = widget.NewLabel("")
	sw.datePreview = widget.NewLabel("")
	sw.timeEntry = app.newPatternEntry(timePattern, sw.timePreview)
	sw.dateEntry = app.newPatternEntry(datePattern, sw.datePreview)

	sw.checkServer = widget.NewCheck(app.GetMsg(config.TKeyLblEnableSrv), nil)
	sw.checkServer.SetChecked(app.serverEnabled())

	sw.entryPort = NewPortEntry(app.GetMsg)
	sw.entryPort.SetText(app.serverPort())

	return sw
}

// newPatternEntry returns an entry validated by the formatter, with a live
// preview of the current instant rendered into preview.
func (app *ClockApp) newPatternEntry(pattern string, preview *widget.Label) *widget.Entry {
	e := widget.NewEntry()
	e.Validator = func(s string) error {
		if err := app.Source.Formatter().Validate(s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrFormat))
		}
		return nil
	}
	e.OnChanged = func(s string) {
		out, err := app.Source.Formatter().Format(app.Source.CurrentInstant(), s)
		if err != nil {
			out = app.GetMsg(config.TKeyErrFormat)
		}
		preview.SetText(out)
	}
	e.SetText(pattern)
	return e
}

func (app *ClockApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemTZ := widget.NewFormItem(app.GetMsg(config.TKeyLblTimezone), sw.tzEntry)
	itemTZ.HintText = app.GetMsg(config.TKeyHelpTimezone)

	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemTZ))
}

func (app *ClockApp) buildDisplayCard(sw *settingsWidgets) *widget.Card {
	itemShow := widget.NewFormItem(app.GetMsg(config.TKeyLblShow), sw.showSelect)

	itemTime := widget.NewFormItem(app.GetMsg(config.TKeyLblTimeFormat),
		container.NewBorder(nil, nil, nil, sw.timePreview, sw.timeEntry))
	itemTime.HintText = app.GetMsg(config.TKeyHelpFormat)

	itemDate := widget.NewFormItem(app.GetMsg(config.TKeyLblDateFormat),
		container.NewBorder(nil, nil, nil, sw.datePreview, sw.dateEntry))

	return widget.NewCard(app.GetMsg(config.TKeyLblDisplay), "", widget.NewForm(itemShow, itemTime, itemDate))
}

func (app *ClockApp) buildServerCard(sw *settingsWidgets) *widget.Card {
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	form := widget.NewForm(itemPort)

	sw.checkServer.OnChanged = func(b bool) {
		if b {
			form.Show()
		} else {
			form.Hide()
		}
	}
	sw.checkServer.OnChanged(sw.checkServer.Checked)

	return widget.NewCard(app.GetMsg(config.TKeyLblServer), "", container.NewVBox(sw.checkServer, form))
}

// validate runs every field validator; the first failure blocks saving.
func (sw *settingsWidgets) validate() error {
	if err := sw.tzEntry.Validate(); err != nil {
		return err
	}
	if err := sw.timeEntry.Validate(); err != nil {
		return err
	}
	if err := sw.dateEntry.Validate(); err != nil {
		return err
	}
	if sw.checkServer.Checked {
		return sw.entryPort.Validate()
	}
	return nil
}

// saveSettings persists the values and applies them to the running clock.
func (app *ClockApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	modes := make(map[string]string)
	for mode, label := range app.showLabels() {
		modes[label] = mode
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefShow, modes[sw.showSelect.Selected])
	app.Preferences.SetString(config.PrefTimezone, sw.tzEntry.Text)
	app.Preferences.SetString(config.PrefTimePattern, sw.timeEntry.Text)
	app.Preferences.SetString(config.PrefDatePattern, sw.dateEntry.Text)
	app.Preferences.SetBool(config.PrefServerEnabled, sw.checkServer.Checked)
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// Saved settings win over command line overrides from now on.
	app.Options = Options{}
	app.ApplyPreferences()
}

// showLabels maps show modes to their localized labels.
func (app *ClockApp) showLabels() map[string]string {
	return map[string]string{
		config.ShowTimeDate: app.GetMsg(config.TKeyShowTimeDate),
		config.ShowDateTime: app.GetMsg(config.TKeyShowDateTime),
		config.ShowTime:     app.GetMsg(config.TKeyShowTime),
		config.ShowDate:     app.GetMsg(config.TKeyShowDate),
	}
}
