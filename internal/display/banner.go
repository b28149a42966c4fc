package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner is the startup art, centred on the terminal.
func RenderBanner() string {
	return centerBanner(bannerRaw, termWidth())
}

// centerBanner shifts the whole block right by the same amount so the
// ASCII letters stay aligned with each other.
func centerBanner(raw string, width int) string {
	art := strings.TrimRight(raw, "\n")
	if art == "" {
		return ""
	}
	styled := make([]string, 0, strings.Count(art, "\n")+1)
	for _, l := range strings.Split(art, "\n") {
		styled = append(styled, BannerStyle.Render(l))
	}
	block := strings.Join(styled, "\n")
	if lipgloss.Width(block) < width {
		block = lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
	}
	return block + "\n"
}

func termWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
