package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeepsDefaultsForZeroFields(t *testing.T) {
	merged := DefaultConfig().Merge(Config{BotName: "Support Bot", Theme: "dark"})

	assert.Equal(t, "Support Bot", merged.BotName)
	assert.Equal(t, "dark", merged.Theme)
	assert.Equal(t, "#2563eb", merged.PrimaryColor)
	assert.Equal(t, "bottom-right", merged.Position)
}

func TestEmbedCodeContainsConfigAndPosition(t *testing.T) {
	g := NewGenerator()
	code := g.EmbedCode(Config{BotName: "Helper", Position: "top-left"})

	assert.Contains(t, code, "iframe.style.top = '20px'")
	assert.Contains(t, code, "iframe.style.left = '20px'")
	assert.Contains(t, code, "ai-chat-widget")
	assert.Contains(t, code, "Helper")
}

func TestEmbedCodeDefaultsBottomRight(t *testing.T) {
	code := NewGenerator().EmbedCode(Config{})

	assert.Contains(t, code, "iframe.style.bottom = '20px'")
	assert.Contains(t, code, "iframe.style.right = '20px'")
}
