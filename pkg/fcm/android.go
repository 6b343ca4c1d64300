package fcm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	AndroidMessagePriorityNormal AndroidMessagePriority = "NORMAL"
	AndroidMessagePriorityHigh   AndroidMessagePriority = "HIGH"
)

// AndroidMessagePriority values:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidmessagepriority
type AndroidMessagePriority string

const (
	NotificationPriorityUnspecified NotificationPriority = "PRIORITY_UNSPECIFIED"
	NotificationPriorityMin         NotificationPriority = "PRIORITY_MIN"
	NotificationPriorityLow         NotificationPriority = "PRIORITY_LOW"
	NotificationPriorityDefault     NotificationPriority = "PRIORITY_DEFAULT"
	NotificationPriorityHigh        NotificationPriority = "PRIORITY_HIGH"
	NotificationPriorityMax         NotificationPriority = "PRIORITY_MAX"
)

// NotificationPriority is the relative priority processed by the client
// after delivery. Note it differs from AndroidMessagePriority, which
// controls when the message is delivered.
type NotificationPriority string

const (
	VisibilityUnspecified Visibility = "VISIBILITY_UNSPECIFIED"
	VisibilityPrivate     Visibility = "PRIVATE"
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilitySecret      Visibility = "SECRET"
)

// Visibility values:
// https://developer.android.com/reference/android/app/Notification.html#visibility
type Visibility string

const (
	ProxyUnspecified       Proxy = "PROXY_UNSPECIFIED"
	ProxyAllow             Proxy = "ALLOW"
	ProxyDeny              Proxy = "DENY"
	ProxyIfPriorityLowered Proxy = "IF_PRIORITY_LOWERED"
)

// Proxy controls when a notification may be proxied.
type Proxy string

// Duration is the protobuf Duration json encoding: the number of seconds
// with nanoseconds expressed as fractional seconds, followed by the
// suffix "s". For example 3 seconds is encoded as "3s" and 3.5 seconds
// as "3.5s".
// https://developers.google.com/protocol-buffers/docs/reference/google.protobuf#google.protobuf.Duration
type Duration float64

// Seconds builds a Duration from a seconds count.
func Seconds(secs float64) *Duration {
	d := Duration(secs)
	return &d
}

func (d Duration) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "s"
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {

	src, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.Wrap(err, "duration")
	}

	val, err := strconv.ParseFloat(strings.TrimSuffix(src, "s"), 64)
	if err != nil {
		return errors.Wrap(err, "duration")
	}

	*d = Duration(val)
	return nil
}

// AndroidConfig format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidconfig
type AndroidConfig struct {
	// Options for features provided by the FCM SDK for Android.
	FcmOptions *AndroidFcmOptions `json:"fcm_options,omitempty"`

	Priority AndroidMessagePriority `json:"priority,omitempty"`

	Notification *AndroidNotification `json:"notification,omitempty"`

	// Arbitrary key/value payload. If present, it overrides Message data.
	Data map[string]string `json:"data,omitempty"`

	// Package name of the application where the registration token must
	// match in order to receive the message.
	RestrictedPackageName string `json:"restricted_package_name,omitempty"`

	// How long the message is kept in FCM storage if the device is offline.
	// Maximum and default are 4 weeks; 0 means send immediately or drop.
	TTL *Duration `json:"ttl,omitempty"`

	// Allow delivery while the device is in direct boot mode.
	DirectBootOK *bool `json:"direct_boot_ok,omitempty"`

	// Identifier of a group of messages that can be collapsed, so that only
	// the last message gets sent when delivery can be resumed.
	CollapseKey string `json:"collapse_key,omitempty"`
}

// AndroidNotification format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidnotification
type AndroidNotification struct {
	// The notification title/body/icon. When present they override the
	// top-level Notification fields.
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Icon  string `json:"icon,omitempty"`

	// The notification's icon color, in #rrggbb format.
	Color string `json:"color,omitempty"`

	// "default" or the filename of a sound resource bundled in the app
	// (under /res/raw/).
	Sound string `json:"sound,omitempty"`

	// Identifier used to replace existing notifications in the drawer.
	Tag string `json:"tag,omitempty"`

	// Activity with a matching intent filter is launched on click.
	ClickAction string `json:"click_action,omitempty"`

	BodyLocKey   string   `json:"body_loc_key,omitempty"`
	BodyLocArgs  []string `json:"body_loc_args,omitempty"`
	TitleLocKey  string   `json:"title_loc_key,omitempty"`
	TitleLocArgs []string `json:"title_loc_args,omitempty"`

	// The notification's channel id (Android O and up). The app must create
	// the channel before a notification with this id is received.
	ChannelID string `json:"channel_id,omitempty"`

	// Sets the "ticker" text, sent to accessibility services.
	Ticker string `json:"ticker,omitempty"`

	// When true the notification persists even when the user clicks it.
	Sticky *bool `json:"sticky,omitempty"`

	// Time of the event in the notification, as a protobuf Timestamp,
	// e.g. "2014-10-02T15:01:23Z".
	EventTime string `json:"event_time,omitempty"`

	// Relevant only to the current device, not bridged to Wear OS.
	LocalOnly *bool `json:"local_only,omitempty"`

	NotificationPriority NotificationPriority `json:"notification_priority,omitempty"`

	// Use the framework's default sound / vibrate pattern / LED settings.
	DefaultSound          *bool `json:"default_sound,omitempty"`
	DefaultVibrateTimings *bool `json:"default_vibrate_timings,omitempty"`
	DefaultLightSettings  *bool `json:"default_light_settings,omitempty"`

	// Vibration pattern: wait, on, off, on, ...
	// Ignored when default_vibrate_timings is true.
	VibrateTimings []Duration `json:"vibrate_timings,omitempty"`

	Visibility Visibility `json:"visibility,omitempty"`

	// Number of items this notification represents, shown as a badge count
	// on launchers that support badging.
	NotificationCount *int `json:"notification_count,omitempty"`

	LightSettings *LightSettings `json:"light_settings,omitempty"`

	Image string `json:"image,omitempty"`

	// Deprecated: display notifications are handled by the proxy setting.
	BypassProxyNotification *bool `json:"bypass_proxy_notification,omitempty"`

	Proxy Proxy `json:"proxy,omitempty"`
}

// LightSettings controls the notification LED blinking rate and color.
type LightSettings struct {
	Color Color `json:"color"`

	// Along with light_off_duration, defines the blink rate of LED flashes.
	LightOnDuration  *Duration `json:"light_on_duration,omitempty"`
	LightOffDuration *Duration `json:"light_off_duration,omitempty"`
}

// Color of the LED, values in the interval [0, 1].
// https://github.com/googleapis/googleapis/blob/master/google/type/color.proto
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// AndroidFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidfcmoptions
type AndroidFcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`
}
