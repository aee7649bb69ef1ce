// Package richtext canonicalizes HTML authored in the admin rich-text
// editor before it is persisted or rendered. The browser widget produces the
// markup; this package is the trust boundary that strips active content and
// normalizes the custom embeds to one shape.
package richtext

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Classes applied to embedded images so they scale with the viewport.
const imageClasses = "max-w-full h-auto"

// Inline styling applied to block iframes (maps, videos).
const iframeStyle = "width:100%;min-height:300px"

// YouTubeEmbedURL rewrites a YouTube watch, short-link or shorts URL into
// the embeddable player URL. Returns false for anything that is not a
// recognizable YouTube video URL. Already-embeddable URLs pass through.
func YouTubeEmbedURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	var videoID string
	switch {
	case host == "youtu.be":
		videoID = strings.Trim(u.Path, "/")
	case strings.HasSuffix(host, "youtube.com"):
		switch {
		case strings.HasPrefix(u.Path, "/embed/"):
			videoID = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			videoID = strings.TrimPrefix(u.Path, "/shorts/")
		default:
			videoID = u.Query().Get("v")
		}
	}
	videoID = strings.Trim(videoID, "/")
	if videoID == "" {
		return "", false
	}
	return "https://www.youtube.com/embed/" + videoID, true
}

// NormalizeHTML parses an editor HTML fragment and returns its canonical
// form: script/style elements and event-handler attributes removed,
// javascript: URLs dropped, images carrying the responsive sizing classes,
// iframes carrying frameborder/allowfullscreen and full-width styling.
// Normalizing already-normalized input returns it unchanged.
func NormalizeHTML(fragment string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if clean := normalizeNode(n); clean != nil {
			if err := html.Render(&buf, clean); err != nil {
				return "", err
			}
		}
	}
	return buf.String(), nil
}

// normalizeNode returns the canonicalized node, or nil if the node must be
// dropped entirely.
func normalizeNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return nil
		case atom.Img:
			stripActiveAttrs(n)
			ensureClasses(n, imageClasses)
		case atom.Iframe:
			stripActiveAttrs(n)
			setAttr(n, "frameborder", "0")
			setAttr(n, "allowfullscreen", "")
			setAttr(n, "style", iframeStyle)
		default:
			stripActiveAttrs(n)
		}
	}

	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if normalizeNode(c) == nil {
			n.RemoveChild(c)
		}
	}
	return n
}

// stripActiveAttrs removes event-handler attributes and javascript: URLs.
func stripActiveAttrs(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if (key == "href" || key == "src") &&
			strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// ensureClasses appends each class token that is not already present.
func ensureClasses(n *html.Node, classes string) {
	existing := ""
	idx := -1
	for i, a := range n.Attr {
		if a.Key == "class" {
			existing = a.Val
			idx = i
			break
		}
	}
	have := make(map[string]bool)
	for _, tok := range strings.Fields(existing) {
		have[tok] = true
	}
	out := existing
	for _, tok := range strings.Fields(classes) {
		if !have[tok] {
			if out != "" {
				out += " "
			}
			out += tok
		}
	}
	if idx >= 0 {
		n.Attr[idx].Val = out
	} else {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: out})
	}
}
