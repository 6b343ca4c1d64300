package test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
)

// Environment for live tests:
// 1. download service-account.json from https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
// 2. create environment variable "GOOGLE_APPLICATION_CREDENTIALS" with path to service-account.json
// 3. create file with devices tokens. format:
//	{
//     "android": "<token>",
//     "ios": "<token>"
//	}
// 4. create environment variable "PUSH_DEVICES" with path to file with devices tokens

func GetPushDevices() (android, ios string, _ error) {

	path := os.Getenv("PUSH_DEVICES")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	devices := &struct {
		Android string `json:"android"`
		IOS     string `json:"ios"`
	}{}

	r := bytes.NewReader(data)
	if err := json.NewDecoder(r).Decode(devices); err != nil {
		return "", "", err
	}

	return devices.Android, devices.IOS, nil
}

func GetGoogleServiceAccount() ([]byte, error) {

	path, err := GetPathToGoogleServiceAccount()
	if err != nil {
		return nil, err
	}

	return ioutil.ReadFile(path)
}

func GetPathToGoogleServiceAccount() (string, error) {

	path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	_, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	return path, nil
}

func GetTopicName() string {
	return os.Getenv("TEST_FIREBASE_TOPIC_NAME")
}
