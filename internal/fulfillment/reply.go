package fulfillment

// RichItem is one card in a structured rich-list reply.
type RichItem struct {
	Title      string
	Subtitle   string
	ImageURL   string
	ActionLink string
}

// RichList is a structured reply of product cards.
type RichList struct {
	Items []RichItem
}

// Reply is the single output of one dispatch: either plain text or a rich
// list, never both.
type Reply struct {
	Text string
	Rich *RichList
}

// IsRich reports whether the reply carries structured content.
func (r Reply) IsRich() bool {
	return r.Rich != nil
}

// IsEmpty reports whether no reply was produced. A dispatched handler always
// leaves a non-empty reply; this exists for the transport's fallback path.
func (r Reply) IsEmpty() bool {
	return r.Text == "" && r.Rich == nil
}
