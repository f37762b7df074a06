package report

import (
	"strings"

	"github.com/joseph-ayodele/bizledger/internal/common"
)

// Letterhead is the company banner printed above every report.
type Letterhead struct {
	CompanyName string
	Tagline     string
	Lines       []string
}

// LetterheadFromConfig builds the banner from report configuration. The
// address and contact values may hold several lines separated by ";" or
// newlines.
func LetterheadFromConfig(cfg common.ReportConfig) Letterhead {
	lh := Letterhead{CompanyName: cfg.CompanyName, Tagline: cfg.CompanyTagline}
	for _, v := range []string{cfg.CompanyAddress, cfg.CompanyContact} {
		for _, line := range strings.FieldsFunc(v, func(r rune) bool { return r == '\n' || r == ';' }) {
			if line = strings.TrimSpace(line); line != "" {
				lh.Lines = append(lh.Lines, line)
			}
		}
	}
	return lh
}

// banner returns the letterhead as display lines, skipping empty values.
func (lh Letterhead) banner() []string {
	var out []string
	for _, s := range append([]string{lh.CompanyName, lh.Tagline}, lh.Lines...) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
