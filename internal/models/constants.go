package models

import "regexp"

// Layout is the post list layout of a theme.
type Layout string

const (
	LayoutMasonry Layout = "masonry"
	LayoutGrid    Layout = "grid"
	LayoutList    Layout = "list"
)

// ColorMode is the colour scheme of a theme.
type ColorMode string

const (
	ColorModeDark  ColorMode = "dark"
	ColorModeLight ColorMode = "light"
	ColorModeAuto  ColorMode = "auto"
)

// CardStyle is the post card decoration of a theme.
type CardStyle string

const (
	CardStyleRounded CardStyle = "rounded"
	CardStyleSquare  CardStyle = "square"
	CardStyleShadow  CardStyle = "shadow"
)

// ThemeTypes lists the enumerated theme settings.
type ThemeTypes struct {
	Layout    []Layout    `json:"layout"`
	Theme     []ColorMode `json:"theme"`
	CardStyle []CardStyle `json:"cardStyle"`
}

// AllThemeTypes returns every accepted value of the enumerated settings.
func AllThemeTypes() ThemeTypes {
	return ThemeTypes{
		Layout:    []Layout{LayoutMasonry, LayoutGrid, LayoutList},
		Theme:     []ColorMode{ColorModeDark, ColorModeLight, ColorModeAuto},
		CardStyle: []CardStyle{CardStyleRounded, CardStyleSquare, CardStyleShadow},
	}
}

// LanguageMap maps a lowercase extension without the dot to the editor language.
var LanguageMap = map[string]string{
	"html": "html",
	"htm":  "html",
	"css":  "css",
	"scss": "scss",
	"sass": "sass",
	"js":   "javascript",
	"ts":   "typescript",
	"yaml": "yaml",
	"yml":  "yaml",
	"json": "json",
}

// PreviewMode is a named preview viewport.
type PreviewMode struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Icon   string `json:"icon"`
}

// PreviewModes lists the preview viewports in display order.
var PreviewModes = []PreviewMode{
	{Label: "桌面端", Value: "desktop", Width: "100%", Height: "100%", Icon: "desktop"},
	{Label: "平板端", Value: "tablet", Width: "768px", Height: "1024px", Icon: "tablet"},
	{Label: "手机端", Value: "mobile", Width: "375px", Height: "667px", Icon: "mobile"},
}

// DevicePreset is a concrete device size for the preview frame.
type DevicePreset struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type" enum:"mobile,tablet,desktop"`
}

// DevicePresets lists the preview device presets.
var DevicePresets = []DevicePreset{
	{Name: "iPhone 14", Width: 390, Height: 844, Type: "mobile"},
	{Name: "iPhone 14 Pro", Width: 393, Height: 852, Type: "mobile"},
	{Name: "iPad", Width: 768, Height: 1024, Type: "tablet"},
	{Name: "iPad Pro", Width: 1024, Height: 1366, Type: "tablet"},
	{Name: "MacBook", Width: 1440, Height: 900, Type: "desktop"},
	{Name: "Desktop", Width: 1920, Height: 1080, Type: "desktop"},
}

// EditorConfig holds the code editor defaults.
type EditorConfig struct {
	Theme         string `json:"theme"`
	FontSize      int    `json:"fontSize"`
	TabSize       int    `json:"tabSize"`
	WordWrap      bool   `json:"wordWrap"`
	Minimap       bool   `json:"minimap"`
	LineNumbers   bool   `json:"lineNumbers"`
	AutoSave      bool   `json:"autoSave"`
	AutoSaveDelay int    `json:"autoSaveDelay" doc:"Milliseconds"`
}

// DefaultEditorConfig is the editor configuration offered to new sessions.
var DefaultEditorConfig = EditorConfig{
	Theme:         "dark",
	FontSize:      14,
	TabSize:       2,
	WordWrap:      true,
	Minimap:       true,
	LineNumbers:   true,
	AutoSave:      true,
	AutoSaveDelay: 1000,
}

// ValidationRule describes a form-level rule for a theme field.
type ValidationRule struct {
	Required  bool   `json:"required"`
	Pattern   string `json:"pattern,omitempty"`
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
	Message   string `json:"message"`
}

// Patterns shared by the validators and the published rules.
var (
	ThemeNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	VersionPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	ColorPattern     = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// ValidationRules are keyed by the field they constrain.
var ValidationRules = map[string]ValidationRule{
	"THEME_NAME": {
		Required: true,
		Pattern:  ThemeNamePattern.String(),
		Message:  "主题名称只能包含小写字母、数字和连字符",
	},
	"DISPLAY_NAME": {
		Required:  true,
		MinLength: 1,
		MaxLength: 50,
		Message:   "显示名称长度必须在1-50个字符之间",
	},
	"VERSION": {
		Required: true,
		Pattern:  VersionPattern.String(),
		Message:  "版本号格式必须为 x.y.z",
	},
	"COLOR": {
		Required: true,
		Pattern:  ColorPattern.String(),
		Message:  "颜色值必须为有效的十六进制颜色代码",
	},
}

// Shortcuts maps editor actions to key bindings.
var Shortcuts = map[string]string{
	"SAVE":       "Ctrl+S",
	"SAVE_ALL":   "Ctrl+Shift+S",
	"NEW_FILE":   "Ctrl+N",
	"OPEN_FILE":  "Ctrl+O",
	"CLOSE_FILE": "Ctrl+W",
	"FIND":       "Ctrl+F",
	"REPLACE":    "Ctrl+H",
	"PREVIEW":    "Ctrl+P",
	"VALIDATE":   "Ctrl+Shift+V",
	"FULLSCREEN": "F11",
}

// DevelopmentTool describes one panel of the development workbench.
type DevelopmentTool struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Component   string `json:"component"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DevelopmentTools lists the workbench panels in display order.
var DevelopmentTools = []DevelopmentTool{
	{Name: "主题构建器", Type: "builder", Component: "ThemeBuilder", Description: "配置主题基本信息和样式", Icon: "settings"},
	{Name: "代码编辑器", Type: "editor", Component: "ThemeEditor", Description: "编辑主题模板和样式文件", Icon: "code"},
	{Name: "实时预览", Type: "preview", Component: "ThemePreview", Description: "预览主题效果", Icon: "eye"},
	{Name: "主题验证器", Type: "validator", Component: "ThemeValidator", Description: "验证主题配置和代码", Icon: "check-circle"},
}

// ErrorCode classifies operational failures of the action layer.
type ErrorCode string

const (
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrCodeFileReadError  ErrorCode = "FILE_READ_ERROR"
	ErrCodeFileWriteError ErrorCode = "FILE_WRITE_ERROR"
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodePreview        ErrorCode = "PREVIEW_ERROR"
	ErrCodeSave           ErrorCode = "SAVE_ERROR"
	ErrCodeLoad           ErrorCode = "LOAD_ERROR"
)

// ErrorCodes lists every ErrorCode.
var ErrorCodes = []ErrorCode{
	ErrCodeFileNotFound, ErrCodeFileReadError, ErrCodeFileWriteError,
	ErrCodeValidation, ErrCodePreview, ErrCodeSave, ErrCodeLoad,
}

// DevelopmentState is the coarse state of the development session.
type DevelopmentState string

const (
	StateIdle       DevelopmentState = "idle"
	StateLoading    DevelopmentState = "loading"
	StateSaving     DevelopmentState = "saving"
	StateValidating DevelopmentState = "validating"
	StatePreviewing DevelopmentState = "previewing"
	StateError      DevelopmentState = "error"
)

// DevelopmentStates lists every DevelopmentState.
var DevelopmentStates = []DevelopmentState{
	StateIdle, StateLoading, StateSaving, StateValidating, StatePreviewing, StateError,
}

// DevelopmentEvent names a notification emitted by the session.
type DevelopmentEvent string

const (
	EventFileChanged         DevelopmentEvent = "file_changed"
	EventConfigChanged       DevelopmentEvent = "config_changed"
	EventValidationCompleted DevelopmentEvent = "validation_completed"
	EventPreviewUpdated      DevelopmentEvent = "preview_updated"
	EventSaveCompleted       DevelopmentEvent = "save_completed"
	EventErrorOccurred       DevelopmentEvent = "error_occurred"
)

// DevelopmentEvents lists every DevelopmentEvent.
var DevelopmentEvents = []DevelopmentEvent{
	EventFileChanged, EventConfigChanged, EventValidationCompleted,
	EventPreviewUpdated, EventSaveCompleted, EventErrorOccurred,
}

// DevelopmentConfig holds the session timing and size limits.
type DevelopmentConfig struct {
	AutoSaveInterval      int64    `json:"autoSaveInterval" doc:"Milliseconds"`
	PreviewUpdateDelay    int64    `json:"previewUpdateDelay" doc:"Milliseconds"`
	ValidationDebounce    int64    `json:"validationDebounce" doc:"Milliseconds"`
	MaxFileSize           int64    `json:"maxFileSize"`
	SupportedImageFormats []string `json:"supportedImageFormats"`
	SupportedFontFormats  []string `json:"supportedFontFormats"`
}

// DefaultDevelopmentConfig mirrors the limits the console ships with.
var DefaultDevelopmentConfig = DevelopmentConfig{
	AutoSaveInterval:      5000,
	PreviewUpdateDelay:    1000,
	ValidationDebounce:    500,
	MaxFileSize:           10 * 1024 * 1024,
	SupportedImageFormats: []string{"jpg", "jpeg", "png", "gif", "svg", "webp"},
	SupportedFontFormats:  []string{"woff", "woff2", "ttf", "otf", "eot"},
}
