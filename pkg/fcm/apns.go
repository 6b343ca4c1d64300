package fcm

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// Send the notification immediately.
	ApnsPriorityImmediately ApnsPriority = "10"
	// Send based on power considerations on the user's device.
	ApnsPriorityEnergySaving ApnsPriority = "5"
	// Prioritize the device's power over all other factors for delivery,
	// and prevent awakening the device.
	ApnsPriorityEnergySavingNoAwaking ApnsPriority = "1"
)

// ApnsPriority of the notification. APNs defaults to 10 when the header is
// omitted.
type ApnsPriority string

const (
	ApnsPushTypeAlert        ApnsPushType = "alert"
	ApnsPushTypeBackground   ApnsPushType = "background"
	ApnsPushTypeLocation     ApnsPushType = "location"
	ApnsPushTypeVoIP         ApnsPushType = "voip"
	ApnsPushTypeComplication ApnsPushType = "complication"
	ApnsPushTypeFileProvider ApnsPushType = "fileprovider"
	ApnsPushTypeMDM          ApnsPushType = "mdm"
	ApnsPushTypeLiveActivity ApnsPushType = "liveactivity"
	ApnsPushTypePushToTalk   ApnsPushType = "pushtotalk"
)

// ApnsPushType must accurately reflect the contents of the notification's
// payload. On a mismatch APNs may return an error, delay the delivery or
// drop the notification.
// https://developer.apple.com/documentation/usernotifications/sending-notification-requests-to-apns
type ApnsPushType string

// Expiration is a number of whole seconds rendered as a plain decimal
// string on the wire ("3600", no suffix), the format of the
// apns-expiration header.
type Expiration int64

// ExpirationSeconds builds an Expiration from a seconds count.
func ExpirationSeconds(secs int64) *Expiration {
	e := Expiration(secs)
	return &e
}

func (e Expiration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatInt(int64(e), 10) + `"`), nil
}

func (e *Expiration) UnmarshalJSON(data []byte) error {

	src, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.Wrap(err, "expiration")
	}

	val, err := strconv.ParseInt(src, 10, 64)
	if err != nil {
		return errors.Wrap(err, "expiration")
	}

	*e = Expiration(val)
	return nil
}

// Flag is a two-state marker rendered as the json integers 1 (on) and
// 0 (off), never as a boolean: the APNs payload schema expects the integer
// representation.
type Flag bool

const (
	FlagOn  Flag = true
	FlagOff Flag = false
)

// NewFlag returns a pointer for use in optional fields.
func NewFlag(on bool) *Flag {
	f := Flag(on)
	return &f
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {

	switch string(data) {
	case "1":
		*f = FlagOn
	case "0":
		*f = FlagOff
	default:
		return errors.New("flag: want 0 or 1, got " + string(data))
	}

	return nil
}

// ApnsConfig format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#apnsconfig
//
// Payload holds the merged APNs payload: the typed Aps record under the
// "aps" key with the caller's custom data fields alongside it at the same
// level. Build it with NewApnsConfig or NewApnsBackgroundConfig.
type ApnsConfig struct {
	Headers    *ApnsHeaders           `json:"headers,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	FcmOptions *ApnsFcmOptions        `json:"fcm_options,omitempty"`
}

// NewApnsConfig merges the aps record and the custom data map into one
// payload object. A data key named "aps" merges into the record key by key.
func NewApnsConfig(aps *Aps, data map[string]string, headers *ApnsHeaders) *ApnsConfig {

	payload := map[string]interface{}{
		"aps": jsonObject(aps),
	}

	overlay := make(map[string]interface{}, len(data))
	for k, v := range data {
		overlay[k] = v
	}

	return &ApnsConfig{
		Headers: headers,
		Payload: DeepMerge(payload, overlay),
	}
}

// NewApnsBackgroundConfig builds the config of an iOS background
// notification: content-available 1, push type "background", priority "5"
// (priority 10 is an error for background pushes).
func NewApnsBackgroundConfig(data map[string]string) *ApnsConfig {

	cfg := NewApnsConfig(
		&Aps{ContentAvailable: NewFlag(true)},
		data,
		&ApnsHeaders{
			ApnsPushType: ApnsPushTypeBackground,
			ApnsPriority: ApnsPriorityEnergySaving,
		})

	return cfg
}

// DeepMerge merges overlay into base: when both values under a key are
// json objects they are merged key by key recursively, otherwise the
// overlay value replaces the base one. Returns the mutated base.
func DeepMerge(base, overlay map[string]interface{}) map[string]interface{} {

	for k, v := range overlay {
		baseObj, okBase := base[k].(map[string]interface{})
		overlayObj, okOverlay := v.(map[string]interface{})

		if okBase && okOverlay {
			base[k] = DeepMerge(baseObj, overlayObj)
			continue
		}

		base[k] = v
	}

	return base
}

// jsonObject renders a typed record as a generic json object, to make it
// mergeable. The input is a well-typed struct: a marshal failure here is a
// programming error.
func jsonObject(in interface{}) map[string]interface{} {

	data, err := json.Marshal(in)
	if err != nil {
		panic(errors.Wrap(err, "json object"))
	}

	out := make(map[string]interface{})
	if err := json.Unmarshal(data, &out); err != nil {
		panic(errors.Wrap(err, "json object"))
	}

	return out
}

// ApnsHeaders are the APNs http headers:
// https://developer.apple.com/documentation/usernotifications/sending-notification-requests-to-apns
type ApnsHeaders struct {
	Authorization string `json:"authorization,omitempty"`

	// A canonical UUID that's the unique id for the notification
	// (32 lowercase hexadecimal digits in the 8-4-4-4-12 form). When
	// omitted, APNs creates one and returns it in its response.
	ApnsID string `json:"apns-id,omitempty"`

	ApnsPushType ApnsPushType `json:"apns-push-type,omitempty"`

	// The date at which the notification is no longer valid, a UNIX epoch
	// in seconds. Nonzero: APNs stores and retries delivery until that
	// date. Zero: one delivery attempt, no storage.
	ApnsExpiration *Expiration `json:"apns-expiration,omitempty"`

	ApnsPriority ApnsPriority `json:"apns-priority,omitempty"`

	// In general the app's bundle id, possibly with a suffix based on the
	// push type. Required with token-based authentication.
	ApnsTopic string `json:"apns-topic,omitempty"`

	// An identifier (up to 64 bytes) used to merge multiple notification
	// requests into a single notification for the user.
	ApnsCollapseID string `json:"apns-collapse-id,omitempty"`
}

// ApnsFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#apnsfcmoptions
type ApnsFcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`
	Image          string `json:"image,omitempty"`
}

// Aps is the fixed part of the APNs payload:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type Aps struct {
	Alert            Alert  `json:"alert,omitempty"`
	Badge            *int   `json:"badge,omitempty"`
	Sound            Sound  `json:"sound,omitempty"`
	ThreadID         string `json:"thread-id,omitempty"`
	ContentAvailable *Flag  `json:"content-available,omitempty"`
	MutableContent   *Flag  `json:"mutable-content,omitempty"`
	Timestamp        *int64 `json:"timestamp,omitempty"`
	Event            string `json:"event,omitempty"`
	DismissalDate    *int64 `json:"dismissal-date,omitempty"`
	AttributesType   string `json:"attributes-type,omitempty"`
}

// Alert is either a SimpleAlert string or a *RichAlert object. The chosen
// shape is emitted directly, with no wrapper or tag.
type Alert interface {
	alert()
}

type SimpleAlert string

func (SimpleAlert) alert() {}

// RichAlert is the dictionary form of the alert key.
type RichAlert struct {
	// Title shown by Apple Watch in the short look interface.
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`

	// Launch image file to display instead of the app's normal one.
	LaunchImage string `json:"launch-image,omitempty"`

	// Localization keys and their replacement values. Each %@ in the
	// localized string is replaced by the corresponding args entry.
	TitleLocKey     string   `json:"title-loc-key,omitempty"`
	TitleLocArgs    []string `json:"title-loc-args,omitempty"`
	SubtitleLocKey  string   `json:"subtitle-loc-key,omitempty"`
	SubtitleLocArgs []string `json:"subtitle-loc-args,omitempty"`
	LocKey          string   `json:"loc-key,omitempty"`
	LocArgs         []string `json:"loc-args,omitempty"`
}

func (*RichAlert) alert() {}

// Sound is either a SimpleSound file name or a *CriticalSound object.
type Sound interface {
	sound()
}

type SimpleSound string

func (SimpleSound) sound() {}

// CriticalSound plays a sound as a critical alert.
type CriticalSound struct {
	Critical Flag `json:"critical"`

	// Sound file in the app's main bundle or Library/Sounds; "default"
	// plays the system sound.
	Name string `json:"name"`

	// Volume between 0 (silent) and 1 (full volume).
	Volume float64 `json:"volume"`
}

func (*CriticalSound) sound() {}
