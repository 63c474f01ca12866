package report

import (
	"strings"

	"github.com/nao1215/contrastscan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanizeCategory turns a category identifier into a display name,
// e.g. "interactive_other" becomes "Interactive Other". cases.Caser is
// not safe for concurrent use, so each call builds its own.
func humanizeCategory(category model.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(category), "_", " "))
}
