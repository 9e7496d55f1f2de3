package webhook

import "github.com/shopmate-fulfillment/server/internal/fulfillment"

// Request is the fulfillment webhook envelope sent by the NLU layer, one per
// conversational turn.
type Request struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText    string         `json:"queryText"`
	Parameters   map[string]any `json:"parameters"`
	Intent       Intent         `json:"intent"`
	LanguageCode string         `json:"languageCode"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Response is the outbound envelope: plain text, or a rich-content payload
// message. The two forms are never combined.
type Response struct {
	FulfillmentText     string    `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []Message `json:"fulfillmentMessages,omitempty"`
}

type Message struct {
	Payload *RichPayload `json:"payload,omitempty"`
}

// RichPayload carries rich cards in the channel's nested rich-content format.
type RichPayload struct {
	RichContent [][]RichCard `json:"richContent"`
}

type RichCard struct {
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Image      *RichImage `json:"image,omitempty"`
	ActionLink string     `json:"actionLink,omitempty"`
}

type RichImage struct {
	Src RichImageSrc `json:"src"`
}

type RichImageSrc struct {
	RawURL string `json:"rawUrl"`
}

// newResponse serializes a dispatch reply into the wire envelope.
func newResponse(reply fulfillment.Reply) Response {
	if !reply.IsRich() {
		return Response{FulfillmentText: reply.Text}
	}

	cards := make([]RichCard, 0, len(reply.Rich.Items))
	for _, item := range reply.Rich.Items {
		card := RichCard{
			Type:       "info",
			Title:      item.Title,
			Subtitle:   item.Subtitle,
			ActionLink: item.ActionLink,
		}
		if item.ImageURL != "" {
			card.Image = &RichImage{Src: RichImageSrc{RawURL: item.ImageURL}}
		}
		cards = append(cards, card)
	}

	return Response{
		FulfillmentMessages: []Message{
			{Payload: &RichPayload{RichContent: [][]RichCard{cards}}},
		},
	}
}
