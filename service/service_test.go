package service

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/dialogs/firebase-messaging/pkg/fcm"
	"github.com/stretchr/testify/require"
)

func TestReadMessage(t *testing.T) {

	for _, tc := range []struct {
		name string
		src  string
		want fcm.Message
	}{
		{
			name: "token",
			src:  `{"token":"device-token","notification":{"title":"hello"}}`,
			want: &fcm.TokenMessage{
				Token:        "device-token",
				Notification: &fcm.Notification{Title: "hello"},
			},
		},
		{
			name: "topic",
			src:  `{"topic":"news"}`,
			want: &fcm.TopicMessage{Topic: "news"},
		},
		{
			name: "condition",
			src:  `{"condition":"'a' in topics"}`,
			want: &fcm.ConditionMessage{Condition: "'a' in topics"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readMessage(writeMessageFile(t, tc.src))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadMessageInvalid(t *testing.T) {

	_, err := readMessage(writeMessageFile(t, `{"notification":{"title":"hello"}}`))
	require.EqualError(t, err, "message file: no token, topic or condition key")

	_, err = readMessage(writeMessageFile(t, "not json"))
	require.Error(t, err)

	_, err = readMessage("/nonexistent/message.json")
	require.Error(t, err)
}

func writeMessageFile(t *testing.T, src string) string {
	t.Helper()

	f, err := ioutil.TempFile("", "message-*.json")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(f.Name()) })

	_, err = f.WriteString(src)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return f.Name()
}
