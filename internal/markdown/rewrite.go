package markdown

import "regexp"

var (
	highlightWrapper = regexp.MustCompile(`(?s)<div class="codehilite"><pre><code>(.*?)</code></pre></div>`)
	residualFence    = regexp.MustCompile("(?s)<pre><code>([^<]*?)```(\\w+)\\n([^<]*?)```([^<]*?)</code></pre>")
)

// NormalizeCodeBlocks rewrites code markup that reached the HTML untouched,
// typically from raw HTML in a post body:
//
//   - a codehilite wrapper becomes a plain block tagged language-plaintext
//   - a bare <pre><code> holding a ```lang fence gets language-lang and loses the fence markers
//
// The rewrite is textual. Nested or malformed fences are left as they are.
func NormalizeCodeBlocks(html string) string {
	html = highlightWrapper.ReplaceAllString(html, `<pre><code class="language-`+DefaultLanguage+`">$1</code></pre>`)
	return residualFence.ReplaceAllString(html, `<pre><code class="language-$2">$3</code></pre>`)
}
