package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

func richText(v string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: v}},
	}
}

// rowProperties converts a row to page properties keyed by column name. The
// first column becomes the title; the rest are rich_text.
func rowProperties(columns, row []string) notionapi.Properties {
	props := make(notionapi.Properties, len(columns))
	for i, col := range columns {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		if i == 0 {
			props[col] = notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: richText(v),
			}
			continue
		}
		props[col] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(v),
		}
	}
	return props
}

// Title returns the plain text of the page's title property, or "" if it has none.
func Title(props notionapi.Properties) string {
	for _, prop := range props {
		var parts []notionapi.RichText
		switch tp := prop.(type) {
		case *notionapi.TitleProperty:
			parts = tp.Title
		case notionapi.TitleProperty:
			parts = tp.Title
		default:
			continue
		}
		var b strings.Builder
		for _, rt := range parts {
			if rt.PlainText != "" {
				b.WriteString(rt.PlainText)
			} else if rt.Text != nil {
				b.WriteString(rt.Text.Content)
			}
		}
		return b.String()
	}
	return ""
}
