package widget

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Config controls the appearance of the embeddable chat widget.
type Config struct {
	BotName             string `json:"botName"`
	PrimaryColor        string `json:"primaryColor"`
	AccentColor         string `json:"accentColor"`
	LogoURL             string `json:"logoUrl,omitempty"`
	WelcomeMessage      string `json:"welcomeMessage"`
	Position            string `json:"position"`
	Theme               string `json:"theme"`
	ShowTypingIndicator bool   `json:"showTypingIndicator"`
	CollectUserInfo     bool   `json:"collectUserInfo"`
}

func DefaultConfig() Config {
	return Config{
		BotName:             "AI Assistant",
		PrimaryColor:        "#2563eb",
		AccentColor:         "#1d4ed8",
		WelcomeMessage:      "Hello! How can I help you today?",
		Position:            "bottom-right",
		Theme:               "light",
		ShowTypingIndicator: true,
	}
}

// Merge overlays non-zero fields of other onto c.
func (c Config) Merge(other Config) Config {
	merged := c
	if other.BotName != "" {
		merged.BotName = other.BotName
	}
	if other.PrimaryColor != "" {
		merged.PrimaryColor = other.PrimaryColor
	}
	if other.AccentColor != "" {
		merged.AccentColor = other.AccentColor
	}
	if other.LogoURL != "" {
		merged.LogoURL = other.LogoURL
	}
	if other.WelcomeMessage != "" {
		merged.WelcomeMessage = other.WelcomeMessage
	}
	if other.Position != "" {
		merged.Position = other.Position
	}
	if other.Theme != "" {
		merged.Theme = other.Theme
	}
	return merged
}

// Generator renders embed snippets sites paste into their pages.
type Generator struct {
	defaults Config
}

func NewGenerator() *Generator {
	return &Generator{defaults: DefaultConfig()}
}

// EmbedCode returns a script snippet that injects the widget iframe.
func (g *Generator) EmbedCode(overrides Config) string {
	cfg := g.defaults.Merge(overrides)

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		configJSON = []byte("{}")
	}

	vertical := "top"
	if strings.Contains(cfg.Position, "bottom") {
		vertical = "bottom"
	}
	horizontal := "left"
	if strings.Contains(cfg.Position, "right") {
		horizontal = "right"
	}

	return fmt.Sprintf(`<!-- AI Chat Widget -->
<script>
  (function() {
    var iframe = document.createElement('iframe');
    iframe.src = '/widget.html?config=%s';
    iframe.style.position = 'fixed';
    iframe.style.%s = '20px';
    iframe.style.%s = '20px';
    iframe.style.width = '80px';
    iframe.style.height = '80px';
    iframe.style.border = 'none';
    iframe.style.zIndex = '9999';
    iframe.style.borderRadius = '50%%';
    iframe.style.overflow = 'hidden';
    iframe.id = 'ai-chat-widget';
    if (document.readyState === 'loading') {
      document.addEventListener('DOMContentLoaded', function() {
        document.body.appendChild(iframe);
      });
    } else {
      document.body.appendChild(iframe);
    }
  })();
</script>`, url.QueryEscape(string(configJSON)), vertical, horizontal)
}
