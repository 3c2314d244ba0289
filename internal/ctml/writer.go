package ctml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Header is written before the root element.
const Header = `<?xml version="1.0"?>` + "\n"

// Write serializes the document rooted at n. Nesting indents by two spaces,
// empty elements are self-closed, and multi-line values are written one line
// per row at the child indentation.
func (n *Node) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	n.write(bw, 0)
	bw.WriteString("\n")
	return bw.Flush()
}

// String returns the serialized document.
func (n *Node) String() string {
	var buf bytes.Buffer
	_ = n.Write(&buf)
	return buf.String()
}

func (n *Node) write(w *bufio.Writer, level int) {
	if n.name == "" {
		return
	}
	indent := strings.Repeat(" ", level)

	if n.IsComment() {
		v := n.value
		if v != "" {
			if !strings.HasPrefix(v, " ") {
				v = " " + v
			}
			if !strings.HasSuffix(v, " ") {
				v += " "
			}
		}
		w.WriteString("\n" + indent + "<!--" + escape(v) + "-->")
		return
	}

	w.WriteString(indent + "<" + n.name)
	for _, a := range n.attrs {
		w.WriteString(" " + a.Key + `="` + escape(a.Value) + `"`)
	}
	if n.value == "" && len(n.children) == 0 {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")

	if n.value != "" {
		if strings.Contains(n.value, "\n") {
			rest := n.value
			for {
				line, tail, more := strings.Cut(rest, "\n")
				w.WriteString("\n  " + indent + escape(line))
				if !more {
					break
				}
				rest = strings.TrimLeft(tail, " \t\n\r")
			}
		} else {
			w.WriteString(escape(n.value))
		}
	}

	for _, c := range n.children {
		w.WriteString("\n")
		c.write(w, level+2)
	}
	if len(n.children) > 0 {
		w.WriteString("\n" + indent)
	}
	w.WriteString("</" + n.name + ">")
}

func escape(s string) string {
	if !strings.ContainsAny(s, `<>&"'`) {
		return s
	}
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
