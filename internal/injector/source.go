package injector

import "strings"

// source is a file split into lines. Terminated lines in a CRLF file keep
// their trailing "\r", so untouched lines round-trip byte for byte.
type source struct {
	lines    []string
	cr       string
	trailing bool
}

func parse(content string) *source {
	s := &source{}
	if strings.Contains(content, "\r\n") {
		s.cr = "\r"
	}
	if content == "" {
		return s
	}
	body := content
	if strings.HasSuffix(body, "\n") {
		s.trailing = true
		body = body[:len(body)-1]
	}
	s.lines = strings.Split(body, "\n")
	return s
}

func (s *source) String() string {
	out := strings.Join(s.lines, "\n")
	if s.trailing {
		out += "\n"
	}
	return out
}

func text(line string) string {
	return strings.TrimSuffix(line, "\r")
}

func indentOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}

// isMarker reports whether line carries marker, either on its own or as a
// trailing comment. The marker must be preceded by start of line or
// whitespace and followed by end of line or whitespace.
func isMarker(line, marker string) bool {
	t := text(line)
	for off := 0; ; {
		i := strings.Index(t[off:], marker)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(marker)
		before := start == 0 || t[start-1] == ' ' || t[start-1] == '\t'
		after := end == len(t) || t[end] == ' ' || t[end] == '\t'
		if before && after {
			return true
		}
		off = end
	}
}

func (s *source) markerIndex(marker string) int {
	for i, l := range s.lines {
		if isMarker(l, marker) {
			return i
		}
	}
	return -1
}

func (s *source) firstWithPrefix(prefix string) int {
	for i, l := range s.lines {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}

func (s *source) lastWithPrefix(prefix string) int {
	idx := -1
	for i, l := range s.lines {
		if strings.HasPrefix(l, prefix) {
			idx = i
		}
	}
	return idx
}

// render splits a statement into terminated lines carrying indent.
func (s *source) render(stmt, indent string) []string {
	var out []string
	for _, l := range strings.Split(stmt, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l == "" {
			out = append(out, s.cr)
			continue
		}
		out = append(out, indent+l+s.cr)
	}
	return out
}

// insertBefore places stmt on new lines directly above line i, copying its
// indentation.
func (s *source) insertBefore(i int, stmt string) {
	s.insertAt(i, s.render(stmt, indentOf(s.lines[i])))
}

// insertAfter places stmt on new lines directly below line i.
func (s *source) insertAfter(i int, stmt string) {
	s.insertAt(i+1, s.render(stmt, ""))
}

func (s *source) insertAt(i int, add []string) {
	if i >= len(s.lines) {
		s.append(add)
		return
	}
	lines := make([]string, 0, len(s.lines)+len(add))
	lines = append(lines, s.lines[:i]...)
	lines = append(lines, add...)
	lines = append(lines, s.lines[i:]...)
	s.lines = lines
}

// append adds rendered lines at end of file, terminating a previously
// unterminated last line first.
func (s *source) append(add []string) {
	if n := len(s.lines); n > 0 && !s.trailing {
		s.lines[n-1] += s.cr
	}
	s.lines = append(s.lines, add...)
	s.trailing = true
}
