package net

// Message is the JSON envelope relayed between host and viewers. The
// Stroke payload is one stroke in the .skp wire format, so the network
// layer reuses the codec instead of inventing a second encoding.
type Message struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Stroke  string `json:"stroke,omitempty"`
}

const (
	MsgDraw  = "draw"
	MsgClear = "clear"
)
