package post

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?:https?|ftp)://[^\s/$.?#].[^\s]*`)

// Payload is what gets published for one run
type Payload struct {
	Caption string
	Images  []string
}

// Extract pulls the caption and image links out of a column read from the sheet.
// Row 0 is a header, row 1 holds the caption, and every following row may hold an image link.
// Missing rows produce an empty caption or image list; nothing is validated here.
func Extract(rows [][]string) Payload {
	var payload Payload

	if len(rows) > 1 {
		payload.Caption = firstCell(rows[1])
	}

	if len(rows) > 2 {
		for _, row := range rows[2:] {
			cell := firstCell(row)
			if !IsURL(cell) {
				continue
			}
			payload.Images = append(payload.Images, cell)
		}
	}

	return payload
}

// IsURL reports whether s contains an http, https or ftp link.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// HasContent reports whether there is anything to publish.
func (p Payload) HasContent() bool {
	return strings.TrimSpace(p.Caption) != "" || len(p.Images) > 0
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
