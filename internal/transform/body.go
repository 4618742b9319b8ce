package transform

import "strings"

// Body rebuilds a merged description value into the destination HTML
// structure: at most an "Overview" section from the description text and a
// "Specifications" section from any text behind the SpecMarker. Empty
// sections are omitted; if no usable text exists the result is "".
func Body(value string) string {
	overview, specs, _ := strings.Cut(value, SpecMarker)

	var sections []string
	if s := buildSection("Overview", overview); s != "" {
		sections = append(sections, s)
	}
	if s := buildSection("Specifications", specs); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n")
}

func buildSection(label, text string) string {
	body := cleanHTML(text)
	if body == "" {
		return ""
	}
	return "<h3>" + label + "</h3>\n" + body
}

// cleanHTML normalizes escaped newlines, strips script blocks, and wraps
// plain text into paragraphs. Existing markup is kept as-is.
func cleanHTML(text string) string {
	s := strings.ReplaceAll(strings.TrimSpace(text), `\n`, "\n")
	s = scriptRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		// Already markup: keep tags, drop blank lines.
		var lines []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}

	var paras []string
	for _, p := range strings.Split(s, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, "<p>"+p+"</p>")
		}
	}
	return strings.Join(paras, "\n")
}
