package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Clock"
	AppID             = "com.github.tartampluch.go-clock"
	AppAuthor         = "tartampluch"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion    = "version"
	FlagDebug      = "debug"
	FlagTimezone   = "tz"
	FlagShow       = "show"
	FlagTimeFormat = "time-format"
	FlagDateFormat = "date-format"
	FlagServe      = "serve"
	FlagPort       = "port"
	FlagLogFile    = "log-file"
	FlagLogFormat  = "log-format"

	FlagDescVersion    = "Show application version and exit"
	FlagDescDebug      = "Enable debug logging"
	FlagDescTimezone   = "IANA timezone to display (e.g. Europe/Paris); empty uses the system zone"
	FlagDescShow       = "What to display: time, date, datetime or timedate"
	FlagDescTimeFormat = "Token pattern used for the time line"
	FlagDescDateFormat = "Token pattern used for the date line"
	FlagDescServe      = "Serve the displayed time on a localhost HTTP endpoint"
	FlagDescPort       = "Port of the localhost status endpoint"
	FlagDescLogFile    = "Log file path; empty uses the user cache directory, \"-\" disables the file sink"
	FlagDescLogFormat  = "Log format: json or text"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgFlagError     = "%s: %v\n"
	LogFileDisabled  = "-"
)

// -----------------------------------------------------------------------------
// Time & Date Patterns
// -----------------------------------------------------------------------------

const (
	// DefaultTimePattern and DefaultDatePattern are the formatter defaults
	// used when a caller passes an empty pattern.
	DefaultTimePattern = "HH:mm:ss"
	DefaultDatePattern = "DD/MM/YYYY"

	// DisplayTimePattern and DisplayDatePattern are what the window shows
	// until the user picks something else.
	DisplayTimePattern = "hh:mm:ss A"
	DisplayDatePattern = "DD MMM, YYYY"

	// LogTimePattern renders timestamps of the text log sink. The sink wraps
	// the result in square brackets; inside a pattern they mark a literal.
	LogTimePattern = "hh:mm:ss A DD/MM/YYYY"

	// Breakdown field patterns.
	BreakdownHour      = "hh"
	BreakdownMinute    = "mm"
	BreakdownSecond    = "ss"
	BreakdownSubSecond = "SS"
	BreakdownSession   = "A"
	BreakdownDay       = "DD"
	BreakdownMonth     = "MMM"
	BreakdownYear      = "YYYY"

	// TickInterval is the refresh period of the display loop.
	TickInterval = 1 * time.Second
)

// -----------------------------------------------------------------------------
// Show Modes
// -----------------------------------------------------------------------------

const (
	ShowTime     = "time"
	ShowDate     = "date"
	ShowDateTime = "datetime"
	ShowTimeDate = "timedate"
	DefaultShow  = ShowTimeDate
)

// ShowModes lists the accepted show modes in display order.
var ShowModes = []string{ShowTimeDate, ShowDateTime, ShowTime, ShowDate}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 520
	MainWindowHeight    = 320
	SettingsWindowWidth = 520

	TimeTextSize = 60
	DateTextSize = 50

	// ThemeSeedColor is the accent used for the primary color.
	ThemeSeedColor = "#DAE300"

	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeLight

	// Preference Keys
	PrefLanguage      = "language"
	PrefTimezone      = "timezone"
	PrefShow          = "show"
	PrefTimePattern   = "time_pattern"
	PrefDatePattern   = "date_pattern"
	PrefTheme         = "theme_mode"
	PrefServerEnabled = "server_enabled"
	PrefServerPort    = "server_port"
	PrefLastRun       = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyBtnTheme      = "btn_theme"
	TKeyBtnAbout      = "btn_about"
	TKeyBtnSettings   = "btn_settings"
	TKeyAboutTitle    = "about_title"
	TKeyAboutBody     = "about_body" // Requires Author, Version
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblShow       = "lbl_show"
	TKeyLblTimezone   = "lbl_timezone"
	TKeyHelpTimezone  = "help_timezone"
	TKeyLblTimeFormat = "lbl_time_format"
	TKeyLblDateFormat = "lbl_date_format"
	TKeyHelpFormat    = "help_format"
	TKeyLblDisplay    = "lbl_display"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblServer     = "lbl_server"
	TKeyLblEnableSrv  = "lbl_enable_server"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"

	TKeyShowTime     = "show_time"
	TKeyShowDate     = "show_date"
	TKeyShowDateTime = "show_datetime"
	TKeyShowTimeDate = "show_timedate"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrTimezone  = "err_timezone"
	TKeyErrFormat    = "err_format"

	// Calendar names. Month keys are suffixed with the month number (1-12),
	// weekday keys with the Go weekday number (0=Sunday).
	TKeyPrefixMonth      = "month_"
	TKeyPrefixMonthShort = "month_short_"
	TKeyPrefixDay        = "day_"
	TKeyPrefixDayShort   = "day_short_"
)

// -----------------------------------------------------------------------------
// Default Values & Limits
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	DefaultPort     = "18181"
	MinPort         = 1
	MaxPort         = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderIfNoneMatch  = "If-None-Match"

	MimeJSON       = "application/json; charset=utf-8"
	MimeNoSniff    = "nosniff"
	CacheControlNo = "no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidTimezone = "invalid timezone"
	ErrFormatPattern   = "invalid format pattern"
	ErrUnterminated    = "unterminated literal"
	ErrLoopPanic       = "display loop panicked"
	ErrLoopFailed      = "display loop stopped on error"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrLogFile         = "failed to open log file"
	ErrLogFormat       = "unsupported log format"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrEncodeStatus    = "failed to encode status"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrShowMode        = "unsupported show mode"
	ErrPrefTimezone    = "stored timezone is invalid, falling back to system zone"
	ErrPrefTimePattern = "stored time pattern is invalid, falling back to default"
	ErrPrefDatePattern = "stored date pattern is invalid, falling back to default"
	ErrLanguageTag     = "invalid language tag"
	ErrPortInvalid     = "server port must be a number between 1 and 65535"
	ErrInvalidFlags    = "invalid command line arguments"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Clock initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackAbout = "Simple Clock, made by %s (version %s)"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgSourceInit      = "Initialized the date and time source"
	MsgTimezoneUpdate  = "Updated the time zone"
	MsgLoopStart       = "Display loop started"
	MsgLoopStop        = "Display loop stopped"
	MsgLoopPatterns    = "Display patterns changed"
	MsgUpdateTime      = "Updating the time"
	MsgUpdateDate      = "Updating the date"
	MsgThemeChanged    = "Theme mode switched"
	MsgControlBuilt    = "Time piece built"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgStatusUpdated   = "Status cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsSave    = "Saving preferences"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgLoggingReady    = "Logging configured"
	MsgPreferenceApply = "Applying command line overrides"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyValue     = "value"
	LogKeyTimezone  = "timezone"
	LogKeyPattern   = "pattern"
	LogKeyInterval  = "interval"
	LogKeyShow      = "show"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyFormat    = "format"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompPiece   = "time_piece"
	CompSource  = "source"
	CompLoop    = "loop"
	CompServer  = "server"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompLogging = "logging"
)

// -----------------------------------------------------------------------------
// Logging Formats
// -----------------------------------------------------------------------------

const (
	LogFormatJSON    = "json"
	LogFormatText    = "text"
	DefaultLogFormat = LogFormatJSON
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
