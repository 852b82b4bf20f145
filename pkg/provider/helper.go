package provider

import (
	"bytes"
	"encoding/json"
	"errors"
)

const maxErrorBodySize = 2000

// DecodeJSON unmarshals a response body in json format to the object.
// If the server returns invalid json data, the method represents
// the response body as an error
func DecodeJSON(data []byte, retval interface{}) error {

	err := json.Unmarshal(data, retval)
	if err == nil {
		return nil
	}

	if _, ok := err.(*json.SyntaxError); ok {
		errInfo := bytes.TrimSpace(data)
		if len(errInfo) > maxErrorBodySize {
			errInfo = errInfo[:maxErrorBodySize]
		}

		return errors.New(string(errInfo))
	}

	return err
}

func JSONWithoutSecrets(obj interface{}) ([]byte, error) {

	out, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	return RemoveSecretsFromJSON(out), nil
}

var _SecretBegin = []byte(`:"`)

// RemoveSecretsFromJSON masks all json string values.
// Registration tokens and credentials must not leak to logs
func RemoveSecretsFromJSON(in []byte) []byte {

	if len(in) == 0 {
		return in
	}

	buf := bytes.NewBuffer(nil)
	for {
		pos := bytes.Index(in, _SecretBegin)
		if pos == -1 {
			break
		}

		secretStart := pos + len(_SecretBegin)
		buf.Write(in[:secretStart])
		in = in[secretStart:]

		secretEnd := -1
		for i := 0; i < len(in); i++ {
			if in[i] == '"' && (i == 0 || (i > 0 && in[i-1] != '\\')) {
				secretEnd = i
				break
			}
		}

		if secretEnd > -1 {
			if secretEnd > 0 { // don't add a secret mask for empty string
				buf.WriteByte('*')
			}
			in = in[secretEnd:]
		}
	}

	buf.Write(in)

	return buf.Bytes()
}
