package fields

import (
	"regexp"
	"strings"
)

// SimpleFields is the reduced shape used when a document carries none
// of the labeled triggers: headings and bullets instead of fields.
type SimpleFields struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	RequiredItems []string `json:"requiredItems"`
	DueDate       *string  `json:"dueDate"`
}

var looseDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`)

// ExtractSimple reads a document with no labeled fields: the first line
// becomes the name, the first blank-line-delimited paragraph the
// description, bullet lines the required items, and the first date
// token anywhere the due date.
func ExtractSimple(lineText string) SimpleFields {
	var sf SimpleFields

	lines := strings.Split(lineText, "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sf.Name = strings.TrimSpace(line)
			break
		}
	}

	for _, para := range strings.Split(lineText, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			sf.Description = strings.ReplaceAll(para, "\n", " ")
			break
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"-", "•", "*"} {
			item, ok := strings.CutPrefix(line, marker)
			if !ok {
				continue
			}
			if item = strings.TrimSpace(item); item != "" {
				sf.RequiredItems = append(sf.RequiredItems, item)
			}
			break
		}
	}

	if d := looseDateRe.FindString(lineText); d != "" {
		sf.DueDate = &d
	}

	return sf
}
