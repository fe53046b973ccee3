package config

// UIConfig holds interactive form configuration.
type UIConfig struct {
	// Theme is "light", "dark", or empty to detect from the terminal.
	Theme string `yaml:"theme"`

	// RenderMarkdown re-renders a fully revealed response as markdown.
	RenderMarkdown bool `yaml:"render_markdown"`
}
