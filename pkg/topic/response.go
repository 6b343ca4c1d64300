package topic

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ManagementResponse is the raw response of the batchAdd/batchRemove
// endpoints. Results are in the order of the request tokens; an empty
// object means success, otherwise the object carries an "error" key, e.g.
//
//	{"results": [{}, {"error": "NOT_FOUND"}, {"error": "INVALID_ARGUMENT"}]}
//
// Known error values: NOT_FOUND (token deleted or app uninstalled),
// INVALID_ARGUMENT, INTERNAL, TOO_MANY_TOPICS.
type ManagementResponse struct {
	Results []map[string]string `json:"results"`
}

// Rel lists the topics a token is associated to, keyed by topic name, e.g.
//
//	{"topics": {"news": {"addDate": "2015-07-30"}}}
type Rel struct {
	Topics map[string]map[string]string `json:"topics"`
}

// AndroidTopicInfo is the info shape of an android registration.
type AndroidTopicInfo struct {
	// example: "com.iid.example"
	Application string `json:"application"`
	// example: "123456782354"
	AuthorizedEntity string `json:"authorizedEntity"`
	// example: "Android", "ANDROID"
	Platform string `json:"platform"`
	// example: "1a2bc3d4e5"
	AppSigner string `json:"appSigner"`
	// present if and only if the info was requested with details
	Rel *Rel `json:"rel,omitempty"`
}

// IOSTopicInfo is the info shape of an iOS registration.
type IOSTopicInfo struct {
	Application        string `json:"application"`
	AuthorizedEntity   string `json:"authorizedEntity"`
	Platform           string `json:"platform"`
	ApplicationVersion string `json:"applicationVersion,omitempty"`
	Scope              string `json:"scope"`
	Rel                *Rel   `json:"rel,omitempty"`
}

// TopicInfoResponse is the iid/info response. The payload carries no
// discriminant field: the shape is inferred structurally, android first
// (requires appSigner), then iOS (requires scope). Exactly one of the two
// fields is set after a successful decode.
type TopicInfoResponse struct {
	Android *AndroidTopicInfo
	IOS     *IOSTopicInfo
}

func (r *TopicInfoResponse) UnmarshalJSON(data []byte) error {

	android := &AndroidTopicInfo{}
	if err := json.Unmarshal(data, android); err == nil {
		if android.Application != "" && android.AuthorizedEntity != "" && android.AppSigner != "" {
			r.Android = android
			r.IOS = nil
			return nil
		}
	}

	ios := &IOSTopicInfo{}
	if err := json.Unmarshal(data, ios); err != nil {
		return err
	}

	if ios.Application == "" || ios.AuthorizedEntity == "" || ios.Scope == "" {
		return errors.New("topic info: response matches neither the android nor the ios shape")
	}

	r.Android = nil
	r.IOS = ios

	return nil
}

// ImportResponse is the iid/v1:batchImport response.
type ImportResponse struct {
	Results []*ImportResult `json:"results"`
}

type ImportResult struct {
	// example: "368dde283db539abc4a6419b1795b6131194703b816e4f624ffa12"
	ApnsToken string `json:"apns_token"`
	// example: "OK", "Internal Server Error"
	Status string `json:"status"`
	// present only when the import succeeded
	RegistrationToken string `json:"registration_token,omitempty"`
}
