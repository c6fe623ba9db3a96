// Package analytics injects the Google Analytics tag into generated HTML pages.
package analytics

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const snippet = `
<!-- Google tag (gtag.js) -->
<script async src="https://www.googletagmanager.com/gtag/js?id=%[1]s"></script>
<script>
  window.dataLayer = window.dataLayer || [];
  function gtag(){dataLayer.push(arguments);}
  gtag('js', new Date());

  gtag('config', '%[1]s');
</script>
`

// Snippet returns the gtag.js block for trackingID.
func Snippet(trackingID string) string {
	return fmt.Sprintf(snippet, trackingID)
}

// bodyClose returns the byte offset of the last </body> tag, or -1.
func bodyClose(doc []byte) int {
	z := html.NewTokenizer(bytes.NewReader(doc))
	offset, found := 0, -1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				return found
			}
			return -1
		}
		raw := len(z.Raw())
		if tt == html.EndTagToken {
			if name, _ := z.TagName(); atom.Lookup(name) == atom.Body {
				found = offset
			}
		}
		offset += raw
	}
}

// Inject inserts the tracking snippet before the closing body tag. Documents
// without one are returned unchanged with ok false.
func Inject(doc []byte, trackingID string) (out []byte, ok bool) {
	at := bodyClose(doc)
	if at < 0 {
		return doc, false
	}
	var buf bytes.Buffer
	buf.Grow(len(doc) + len(snippet) + 2*len(trackingID))
	buf.Write(doc[:at])
	buf.WriteString(Snippet(trackingID))
	buf.WriteString("\n")
	buf.Write(doc[at:])
	return buf.Bytes(), true
}

// InjectTree rewrites every .html file under root and returns how many were modified.
// An empty trackingID disables injection.
func InjectTree(root, trackingID string) (int, error) {
	if trackingID == "" {
		return 0, nil
	}
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		doc, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, ok := Inject(doc, trackingID)
		if !ok {
			return nil
		}
		count++
		return os.WriteFile(path, out, info.Mode().Perm())
	})
	return count, err
}
