package services

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
	"github.com/cassiozaleski/sercarne-V8.0/utils"

	"github.com/shopspring/decimal"
)

// Spreadsheet formula artifacts that must read as empty cells.
var sheetErrorValues = map[string]bool{
	"#N/A": true, "#N/A!": true, "#REF!": true,
	"#VALUE!": true, "#NAME?": true, "N/A": true,
}

// CleanCell trims a raw cell and collapses spreadsheet error artifacts to "".
func CleanCell(raw string) string {
	s := strings.TrimSpace(raw)
	if sheetErrorValues[s] {
		return ""
	}
	return s
}

// ParseNumber reads a feed numeric cell. It accepts both locale styles
// ("1.234,56" and "1234.56") and a currency prefix; anything unparsable
// collapses to zero.
func ParseNumber(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))

	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		// 1.234,56 -> 1234.56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return n
}

var nonDigits = regexp.MustCompile(`[^\d-]`)

// ParseQuantity reads an integer quantity cell, dropping grouping separators
// and unit suffixes. Unparsable content collapses to zero.
func ParseQuantity(raw string) int {
	s := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" || s == "-" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate accepts DD/MM/YYYY and ISO YYYY-MM-DD, returning midnight in loc.
// The second return is false when the cell is not a usable date.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		s = parts[2] + "-" + parts[1] + "-" + parts[0]
	}

	t, err := time.ParseInLocation(models.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// weekday name fragments as they appear in the route feed ("terças, quintas e
// sabados"), matched accent-insensitively.
var weekdayNames = []struct {
	fragment string
	day      time.Weekday
}{
	{"domingo", time.Sunday},
	{"segunda", time.Monday},
	{"terca", time.Tuesday},
	{"quarta", time.Wednesday},
	{"quinta", time.Thursday},
	{"sexta", time.Friday},
	{"sabado", time.Saturday},
}

// ParseWeekdays extracts the delivery weekdays from a free-text cell. A cell
// naming no weekday yields an empty set, which callers surface as "no route".
func ParseWeekdays(raw string) []time.Weekday {
	normalized := utils.Normalize(raw)
	var days []time.Weekday
	for _, w := range weekdayNames {
		if strings.Contains(normalized, w.fragment) {
			days = append(days, w.day)
		}
	}
	return days
}

var cutoffPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// DefaultCutoff is used when a route's cutoff cell is malformed; 17:00 is the
// value the route feed itself defaults to.
var DefaultCutoff = models.CutoffTime{Hour: 17, Minute: 0}

// ParseCutoff reads "17:30", "17:30h" and similar. Malformed cells fall back
// to DefaultCutoff rather than failing the route.
func ParseCutoff(raw string) models.CutoffTime {
	m := cutoffPattern.FindStringSubmatch(raw)
	if m == nil {
		return DefaultCutoff
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return DefaultCutoff
	}
	return models.CutoffTime{Hour: hour, Minute: minute}
}

var driveIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)|id=([a-zA-Z0-9-_]+)`)

// ProcessImageURL rewrites Google Drive references through the image proxy the
// storefront uses; plain URLs pass through, anything else yields "".
func ProcessImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http") {
		if strings.Contains(s, "drive.google.com") {
			return "https://images.weserv.nl/?url=" + url.QueryEscape(s)
		}
		return s
	}
	m := driveIDPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	id := m[1]
	if id == "" {
		id = m[2]
	}
	driveURL := "https://drive.google.com/uc?export=view&id=" + id
	return "https://images.weserv.nl/?url=" + url.QueryEscape(driveURL)
}

// ParseBool reads the visibility cell, which arrives as TRUE/VERDADEIRO from
// the sheet depending on the account locale.
func ParseBool(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "VERDADEIRO", "1":
		return true
	}
	return false
}
