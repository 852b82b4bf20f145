package worker

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// TokenHash returns a short hash of the registration token for logs
func TokenHash(token string) string {

	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:8])
}

func TokenHashes(tokens []string) []string {

	retval := make([]string, 0, len(tokens))
	for _, token := range tokens {
		retval = append(retval, TokenHash(token))
	}

	return retval
}

func ReadFile(path string, maxSize int64) ([]byte, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// SAST: exception 'utils.ReadFile prone to resource exhaustion'
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	} else if size > maxSize {
		return nil, fmt.Errorf("invalid file size: %d", size)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(buf, f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
