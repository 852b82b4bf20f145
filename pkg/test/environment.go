package test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
)

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

	jsonData, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return jsonData, nil
}

func GetPathToGoogleServiceAccount() (string, error) {

	path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	_, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	return path, nil
}
