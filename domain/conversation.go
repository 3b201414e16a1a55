package domain

import (
	"encoding/json"
	"time"
)

// MessageType is the tagged union of chat message shapes. The API boundary
// normalizes it: an empty tag means TEXT, an unrecognized tag is coerced to
// TEXT instead of being trusted.
type MessageType string

const (
	MessageText   MessageType = "TEXT"
	MessageImage  MessageType = "IMAGE"
	MessageAudio  MessageType = "AUDIO"
	MessageSystem MessageType = "SYSTEM"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageAudio, MessageSystem:
		return true
	}
	return false
}

// NormalizeMessageType maps raw wire tags onto the closed set.
func NormalizeMessageType(raw string) MessageType {
	t := MessageType(raw)
	if raw == "" || !t.Valid() {
		return MessageText
	}
	return t
}

type Message struct {
	Id             string      `json:"id"`
	ConversationId string      `json:"conversationId"`
	SenderId       string      `json:"senderId"`
	Sender         *UserRef    `json:"sender,omitempty"`
	Type           MessageType `json:"type"`
	Text           string      `json:"text"`
	MediaUrl       string      `json:"mediaUrl,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// UnmarshalJSON normalizes the type tag at the boundary.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.Type = NormalizeMessageType(string(a.Type))
	*m = Message(a)
	return nil
}

type Conversation struct {
	Id              string           `json:"id"`
	UserAId         string           `json:"userAId"`
	UserBId         string           `json:"userBId"`
	UserA           *UserRef         `json:"userA,omitempty"`
	UserB           *UserRef         `json:"userB,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	AcceptedRequest *AcceptedRequest `json:"acceptedRequest,omitempty"`
	Messages        []Message        `json:"messages,omitempty"`
}

type AcceptedRequest struct {
	Id             string      `json:"id"`
	RequestId      string      `json:"requestId"`
	SellerId       string      `json:"sellerId"`
	ConversationId string      `json:"conversationId"`
	Request        *RequestRow `json:"request,omitempty"`
}

// ConversationDetail is the payload of GET /admin/conversations/:id/messages.
type ConversationDetail struct {
	Id       string    `json:"id"`
	UserA    UserRef   `json:"userA"`
	UserB    UserRef   `json:"userB"`
	Messages []Message `json:"messages"`
}
