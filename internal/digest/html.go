package digest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
)

const htmlStyle = `
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .email-container { background-color: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #0066cc; text-align: center; border-bottom: 3px solid #0066cc; padding-bottom: 10px; margin-bottom: 30px; }
        h2 { color: #0066cc; border-left: 4px solid #0066cc; padding-left: 15px; margin-top: 30px; }
        .draft { background-color: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 5px; border-left: 4px solid #28a745; }
        .post-content { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; font-style: italic; border: 1px solid #dee2e6; }
        .alt-hooks, .image-prompt { margin: 15px 0; padding: 10px; background-color: #e9ecef; border-radius: 3px; }
        .source { color: #6c757d; font-size: 0.9em; margin: 10px 0; }
        .recommendation { background-color: #fff3cd; padding: 20px; border-radius: 5px; border-left: 4px solid #ffc107; margin: 20px 0; }
        ul, ol { padding-left: 20px; }
        li { margin: 8px 0; }
        .footer { text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #dee2e6; color: #6c757d; font-size: 0.9em; }
`

// renderHTML builds the HTML email body. All user-sourced strings pass
// through html escaping before insertion.
func renderHTML(drafts []*content.Draft, recommended *content.Draft, dist []content.CategoryCount, now time.Time) string {
	esc := html.EscapeString
	date := dateLine(now)

	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Daily LinkedIn Drafts - %s</title>
    <style>%s    </style>
</head>
<body>
    <div class="email-container">
        <h1>Daily LinkedIn Drafts - %s</h1>

        <h2>Today's Sources</h2>
        <ul>
`, esc(date), htmlStyle, esc(date))

	for _, d := range drafts {
		fmt.Fprintf(&b, "            <li><strong>%s</strong> (%s) - Score: %d/%d</li>\n",
			esc(d.Article.Title), esc(d.Article.Source), d.Score(), config.MaxTotalScore)
	}
	b.WriteString("        </ul>\n")

	for i, d := range drafts {
		post := strings.ReplaceAll(esc(d.Post), "\n", "<br>")
		fmt.Fprintf(&b, `
        <div class="draft">
            <h2>Draft %d: %s | %s</h2>
            <p class="source"><strong>Source:</strong> %s (%s)</p>
            <div class="post-content">%s</div>
            <div class="alt-hooks">
                <p><strong>Alternative Hooks:</strong></p>
                <ol>
                    <li>%s</li>
                    <li>%s</li>
                </ol>
            </div>
            <div class="image-prompt">
                <p><strong>Image Prompt:</strong> %s</p>
            </div>
        </div>
`, i+1, esc(d.Persona), esc(category(d)), esc(d.Article.Title), esc(d.Article.Source),
			post, esc(altHook(d, 0)), esc(altHook(d, 1)), esc(d.ImagePrompt))
	}

	fmt.Fprintf(&b, `
        <div class="recommendation">
            <h2>Recommendation</h2>
            <p><strong>Draft by %s</strong> on &quot;%s&quot; - highest source score (%d/%d)</p>
        </div>

        <h2>Content Balance (Last 7 Days)</h2>
        <ul>
`, esc(recommended.Persona), esc(recommended.Article.Title), recommended.Score(), config.MaxTotalScore)

	for _, cc := range dist {
		fmt.Fprintf(&b, "            <li>%s: %d posts</li>\n", esc(cc.Category), cc.Count)
	}

	b.WriteString(`        </ul>

        <div class="footer">
            <p>Generated by Russell's LinkedIn Content Engine<br>
            <small>Powered by the Gmail API</small></p>
        </div>
    </div>
</body>
</html>`)

	return b.String()
}
