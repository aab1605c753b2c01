package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *ClockApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language preference and
// hands localized month and weekday names to the time source.
func (app *ClockApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}

	lang := app.Preferences.String(config.PrefLanguage)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		slog.Warn(config.ErrLanguageTag,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyError, err)
		tag = language.Make(config.DefaultLanguage)
	}

	app.Localizer = i18n.NewLocalizer(app.I18nBundle, tag.String())
	if app.Source != nil {
		app.Source.SetFormatter(engine.NewFormatter(newCalendarNames(app.Localizer)))
	}
}

// GetMsg is a helper to translate a key safely.
func (app *ClockApp) GetMsg(key string) string {
	return localize(app.Localizer, &i18n.LocalizeConfig{MessageID: key}, key)
}

// localize returns fallback when the localizer is missing or the key is unknown.
func localize(l *i18n.Localizer, lc *i18n.LocalizeConfig, fallback string) string {
	if l == nil {
		return fallback
	}
	msg, err := l.Localize(lc)
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// calendarNames is an engine.Names resolved once from a localizer.
// It holds plain tables, so the display loop can read it concurrently.
type calendarNames struct {
	months      [12]string
	monthsShort [12]string
	days        [7]string
	daysShort   [7]string
}

var _ engine.Names = (*calendarNames)(nil)

func newCalendarNames(l *i18n.Localizer) *calendarNames {
	var en engine.EnglishNames
	n := &calendarNames{}
	for m := time.January; m <= time.December; m++ {
		suffix := strconv.Itoa(int(m))
		n.months[m-1] = localize(l, &i18n.LocalizeConfig{MessageID: config.TKeyPrefixMonth + suffix}, en.Month(m))
		n.monthsShort[m-1] = localize(l, &i18n.LocalizeConfig{MessageID: config.TKeyPrefixMonthShort + suffix}, en.MonthShort(m))
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		suffix := strconv.Itoa(int(d))
		n.days[d] = localize(l, &i18n.LocalizeConfig{MessageID: config.TKeyPrefixDay + suffix}, en.Weekday(d))
		n.daysShort[d] = localize(l, &i18n.LocalizeConfig{MessageID: config.TKeyPrefixDayShort + suffix}, en.WeekdayShort(d))
	}
	return n
}

func (n *calendarNames) Month(m time.Month) string { return n.months[m-1] }

func (n *calendarNames) MonthShort(m time.Month) string { return n.monthsShort[m-1] }

func (n *calendarNames) Weekday(d time.Weekday) string { return n.days[d] }

func (n *calendarNames) WeekdayShort(d time.Weekday) string { return n.daysShort[d] }
