package fcm

// WebpushConfig format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#webpushconfig
type WebpushConfig struct {
	// HTTP headers defined in the webpush protocol
	// (https://tools.ietf.org/html/rfc8030#section-5), e.g. "TTL": "15".
	Headers map[string]string `json:"headers,omitempty"`

	Data map[string]string `json:"data,omitempty"`

	// Web Notification options as a json object
	// (https://developer.mozilla.org/en-US/docs/Web/API/Notification).
	// "title" and "body" here override the top-level Notification fields.
	Notification map[string]interface{} `json:"notification,omitempty"`

	FcmOptions *WebpushFcmOptions `json:"fcm_options,omitempty"`
}

// WebpushFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#webpushfcmoptions
type WebpushFcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`

	// The link to open when the user clicks on the notification.
	// HTTPS is required.
	Link string `json:"link,omitempty"`
}
