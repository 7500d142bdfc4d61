package handler

import (
	"fmt"
	"strings"

	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
)

// Presentation is how the glovebox screen renders a classified document.
type Presentation struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	BarWidth string `json:"barWidth"`
	Caption  string `json:"caption"`
	Icon     string `json:"icon"`
}

var statusColors = map[expiry.Status]string{
	expiry.StatusNone:     "slate",
	expiry.StatusExpired:  "red",
	expiry.StatusExpiring: "yellow",
	expiry.StatusValid:    "green",
}

// titleIcons is checked in order; the first keyword contained in the title wins.
var titleIcons = []struct{ keyword, icon string }{
	{"insurance", "shield-check"},
	{"license", "file-certificate"},
	{"licence", "file-certificate"},
	{"emission", "smog"},
	{"tax", "bank"},
}

const defaultIcon = "file-document"

// IconFor picks the document icon from keywords in its title.
func IconFor(title string) string {
	t := strings.ToLower(title)
	for _, ti := range titleIcons {
		if strings.Contains(t, ti.keyword) {
			return ti.icon
		}
	}
	return defaultIcon
}

func present(title string, r expiry.Result) Presentation {
	label := string(r.Status)
	if r.Status == expiry.StatusNone {
		label = "n/a"
	}
	caption := fmt.Sprintf("%d days remaining", r.DaysRemaining)
	switch r.Status {
	case expiry.StatusExpired:
		caption = "Expired"
	case expiry.StatusNone:
		caption = "No expiry date"
	}
	return Presentation{
		Label:    label,
		Color:    statusColors[r.Status],
		BarWidth: fmt.Sprintf("%d%%", int(r.DisplayFraction*100+0.5)),
		Caption:  caption,
		Icon:     IconFor(title),
	}
}
