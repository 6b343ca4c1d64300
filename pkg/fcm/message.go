package fcm

// Message is one of TokenMessage, TopicMessage or ConditionMessage. The
// addressing mode is chosen at construction time and the variant tag never
// appears on the wire: the chosen struct's fields are emitted directly and
// the receiver infers the shape from which addressing key is present.
//
// Message format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#Message
type Message interface {
	message()
}

// TokenMessage targets a single device by its registration token.
type TokenMessage struct {
	// Registration token to send the message to.
	Token string `json:"token"`

	Name string `json:"name,omitempty"`

	// Arbitrary key/value payload.
	Data map[string]string `json:"data,omitempty"`

	FcmOptions   *FcmOptions    `json:"fcm_options,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
	Android      *AndroidConfig `json:"android,omitempty"`
	Webpush      *WebpushConfig `json:"webpush,omitempty"`
	Apns         *ApnsConfig    `json:"apns,omitempty"`
}

func (*TokenMessage) message() {}

// TopicMessage targets every subscriber of a topic.
type TopicMessage struct {
	// Topic name, e.g. "weather". No "/topics/" prefix.
	Topic string `json:"topic"`

	FcmOptions   *FcmOptions    `json:"fcm_options,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
	Android      *AndroidConfig `json:"android,omitempty"`
	Webpush      *WebpushConfig `json:"webpush,omitempty"`
	Apns         *ApnsConfig    `json:"apns,omitempty"`
}

func (*TopicMessage) message() {}

// ConditionMessage targets subscribers matching a boolean topic
// expression, e.g. "'foo' in topics && 'bar' in topics".
type ConditionMessage struct {
	Condition string `json:"condition"`

	FcmOptions   *FcmOptions    `json:"fcm_options,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
	Android      *AndroidConfig `json:"android,omitempty"`
	Webpush      *WebpushConfig `json:"webpush,omitempty"`
	Apns         *ApnsConfig    `json:"apns,omitempty"`
}

func (*ConditionMessage) message() {}

// Notification is the basic template used across all platforms.
type Notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`

	// URL of an image downloaded on the device and displayed in the
	// notification. JPEG, PNG and BMP have full support across platforms;
	// Android has a 1MB image size limit.
	Image string `json:"image,omitempty"`
}

// FcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#fcmoptions
type FcmOptions struct {
	// Label associated with the message's analytics data.
	AnalyticsLabel string `json:"analytics_label,omitempty"`
}

// MessageOutput is the send/validate response payload. Name is the
// identifier of the sent message, in the format of
// `projects/*/messages/{message_id}`.
type MessageOutput struct {
	Name string `json:"name"`
}
