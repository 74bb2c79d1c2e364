package wire

import "time"

// event types pushed over the stream
const (
	EventMessage = "message"
	EventTyping  = "typ"
	// EventReady is the first event of a stream, sent once it is subscribed
	EventReady = "ready"
)

// attachment types
const (
	AttachmentSticker = "sticker"
	AttachmentShare   = "share"
)

// REST paths of the messaging service
const (
	PathLogin    = "/login"
	PathLogout   = "/logout"
	PathMessages = "/messages"
	PathTyping   = "/typing"
	PathUsers    = "/users"
	PathFriends  = "/friends"
	PathHealth   = "/health"
	PathMetrics  = "/metrics"
	PathStream   = "/ws"
)

// HeaderUserAgent is forwarded by the client on every request
const HeaderUserAgent = "User-Agent"

const DefaultHeartbeat = 30 * time.Second

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	PageID   string `json:"pageID,omitempty"`
}

type LoginResp struct {
	UserID  string `json:"userID"`
	ActorID string `json:"actorID"`
	Token   string `json:"token"`
}

// Message is an outgoing message. Exactly one of Body, Sticker or URL
// needs to be set; Body may accompany URL.
type Message struct {
	Body    string `json:"body,omitempty"`
	Sticker string `json:"sticker,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Empty reports whether nothing would be sent
func (m Message) Empty() bool {
	return m.Body == "" && m.Sticker == "" && m.URL == ""
}

type SendMessageReq struct {
	ThreadID string  `json:"threadID"`
	Message  Message `json:"message"`
}

type MessageInfo struct {
	ThreadID  string `json:"threadID"`
	MessageID string `json:"messageID"`
	Timestamp int64  `json:"timestamp"`
}

type TypingReq struct {
	ThreadID string `json:"threadID"`
	IsTyping bool   `json:"isTyping"`
}

type Attachment struct {
	Type      string `json:"type"`
	StickerID string `json:"stickerID,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Event is what the service pushes over the stream
type Event struct {
	Type        string       `json:"type"`
	ThreadID    string       `json:"threadID"`
	MessageID   string       `json:"messageID,omitempty"`
	SenderID    string       `json:"senderID,omitempty"`
	Body        string       `json:"body,omitempty"`
	Attachments []Attachment `json:"attachments"`
	IsGroup     bool         `json:"isGroup"`
	Timestamp   int64        `json:"timestamp"`
	IsTyping    bool         `json:"isTyping,omitempty"`
	From        string       `json:"from,omitempty"`
}

type UserInfo struct {
	Name       string  `json:"name"`
	FirstName  string  `json:"firstName"`
	Vanity     *string `json:"vanity"`
	ProfileURL string  `json:"profileUrl"`
	Gender     string  `json:"gender"`
	Type       string  `json:"type"`
	IsFriend   bool    `json:"isFriend"`
	IsBirthday bool    `json:"isBirthday"`
}

type Friend struct {
	UserID     string `json:"userID"`
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName"`
	Vanity     string `json:"vanity"`
	ProfileURL string `json:"profileUrl"`
	Gender     string `json:"gender"`
	Type       string `json:"type"`
	IsFriend   bool   `json:"isFriend"`
}

type ErrorResp struct {
	Message string `json:"message"`
}
