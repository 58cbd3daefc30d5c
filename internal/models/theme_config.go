package models

// ThemeAuthor identifies who maintains a theme.
type ThemeAuthor struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}

// ThemeSettings holds the layout and visual switches of a theme.
type ThemeSettings struct {
	Layout         Layout    `json:"layout" doc:"masonry, grid or list"`
	Theme          ColorMode `json:"theme" doc:"dark, light or auto"`
	CardStyle      CardStyle `json:"cardStyle" doc:"rounded, square or shadow"`
	ShowHeat       bool      `json:"showHeat"`
	ShowUserLevel  bool      `json:"showUserLevel"`
	EnableComments bool      `json:"enableComments"`
}

// ThemeColors is the fixed five-slot palette of a theme.
type ThemeColors struct {
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary"`
	Background     string `json:"background"`
	CardBackground string `json:"cardBackground"`
	Text           string `json:"text"`
}

// ColorField is one named slot of a ThemeColors palette.
type ColorField struct {
	Key   string
	Value string
}

// Fields returns the palette slots in declaration order, keyed by their JSON names.
func (c ThemeColors) Fields() []ColorField {
	return []ColorField{
		{Key: "primary", Value: c.Primary},
		{Key: "secondary", Value: c.Secondary},
		{Key: "background", Value: c.Background},
		{Key: "cardBackground", Value: c.CardBackground},
		{Key: "text", Value: c.Text},
	}
}

// ThemeConfig describes the theme being developed.
type ThemeConfig struct {
	Name        string        `json:"name" doc:"Lowercase kebab-case identifier"`
	DisplayName string        `json:"displayName"`
	Version     string        `json:"version" doc:"Three-part dotted version, e.g. 1.0.0"`
	Description string        `json:"description"`
	Author      ThemeAuthor   `json:"author"`
	Settings    ThemeSettings `json:"settings"`
	Colors      ThemeColors   `json:"colors"`
}

// DefaultThemeConfig returns the configuration a new development session starts from.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Name:        "akina-zzz",
		DisplayName: "Akina ZZZ 信息流主题",
		Version:     "1.0.0",
		Description: "基于信息流推荐的信息流主题，支持瀑布流布局和深色主题",
		Author: ThemeAuthor{
			Name:    "Akina Team",
			Website: "https://www.akina.run",
		},
		Settings: ThemeSettings{
			Layout:         LayoutMasonry,
			Theme:          ColorModeDark,
			CardStyle:      CardStyleRounded,
			ShowHeat:       true,
			ShowUserLevel:  true,
			EnableComments: true,
		},
		Colors: ThemeColors{
			Primary:        "#4CCBA0",
			Secondary:      "#0E1731",
			Background:     "#1a1a1a",
			CardBackground: "#2d2d2d",
			Text:           "#ffffff",
		},
	}
}
