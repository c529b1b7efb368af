package notion

// Raw records returned by the Notion database query endpoint. Only the
// fields the bot actually reads are declared; everything else in the
// payload is ignored by encoding/json.

type Page struct {
	ID             string                   `json:"id"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Archived       bool                     `json:"archived"`
	CreatedBy      User                     `json:"created_by"`
	Properties     map[string]PropertyValue `json:"properties"`
}

type User struct {
	ID string `json:"id"`
}

// PropertyValue is the union of the property payloads the event database
// uses (title, rich_text, number, date, people, status). Notion tags each
// property with a type string and fills exactly one of these members.
type PropertyValue struct {
	Type     string       `json:"type"`
	Title    []RichText   `json:"title,omitempty"`
	RichText []RichText   `json:"rich_text,omitempty"`
	Number   *float64     `json:"number,omitempty"`
	Date     *DateValue   `json:"date,omitempty"`
	People   []User       `json:"people,omitempty"`
	Status   *StatusValue `json:"status,omitempty"`
}

type RichText struct {
	PlainText string    `json:"plain_text,omitempty"`
	Text      *TextBody `json:"text,omitempty"`
}

type TextBody struct {
	Content string `json:"content"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type StatusValue struct {
	Name string `json:"name"`
}

// Plain returns the concatenated text content of a rich text array.
func Plain(parts []RichText) string {
	var out string
	for _, p := range parts {
		if p.PlainText != "" {
			out += p.PlainText
			continue
		}
		if p.Text != nil {
			out += p.Text.Content
		}
	}
	return out
}

type queryRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	Sorts       []querySort  `json:"sorts,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
}

type queryFilter struct {
	Property string          `json:"property"`
	Date     queryDateFilter `json:"date"`
}

type queryDateFilter struct {
	OnOrAfter string `json:"on_or_after"`
}

type querySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}
