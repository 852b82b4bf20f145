package service

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dialogs/dialog-topic-service/pkg/provider/topic"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetFlags(log.Llongfile | log.Ltime | log.Lmicroseconds)
}

func TestService(t *testing.T) {

	// fake oauth server: any assertion gets a token
	oauthSvr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer oauthSvr.Close()

	// fake subscription server
	backendSvr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("access_token_auth") != "true" ||
			r.Header.Get("Authorization") != "Bearer test-token" {

			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		req := &topic.Request{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil ||
			!strings.HasPrefix(req.To, topic.Prefix) {

			w.WriteHeader(http.StatusBadRequest)
			return
		}

		results := make([]string, 0, len(req.RegistrationTokens))
		for _, token := range req.RegistrationTokens {
			if token == "bad-token" {
				results = append(results, `{"error":"NOT_FOUND"}`)
			} else {
				results = append(results, `{}`)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[` + strings.Join(results, ",") + `]}`))
	}))
	defer backendSvr.Close()

	accountPath := saveRealishServiceAccount(t, oauthSvr.URL)
	defer func() { require.NoError(t, os.Remove(accountPath)) }()

	apiPort := getFreePort(t)
	adminPort := getFreePort(t)

	cfgPath := saveServiceConfig(t, apiPort, adminPort, accountPath, backendSvr.URL)
	defer func() { require.NoError(t, os.Remove(cfgPath)) }()

	v := viper.New()
	v.SetConfigFile(cfgPath)
	require.NoError(t, v.ReadInConfig())

	svc, err := New(v, getLogger(t))
	require.NoError(t, err)
	require.NotNil(t, svc)

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.Equal(t, http.ErrServerClosed, svc.Run())
	}()

	defer func() {
		require.NoError(t, svc.Close())
		wg.Wait()
	}()

	apiAddr := "http://" + net.JoinHostPort("127.0.0.1", apiPort)
	waitForService(t, apiAddr+"/v1/subscribe")

	for _, testInfo := range []struct {
		Name string
		Func func(*testing.T)
	}{
		{
			Name: "subscribe: success",
			Func: func(*testing.T) { testSubscribeSuccess(t, apiAddr) },
		},
		{
			Name: "subscribe: partial failure",
			Func: func(*testing.T) { testSubscribePartialFailure(t, apiAddr) },
		},
		{
			Name: "unsubscribe: success",
			Func: func(*testing.T) { testUnsubscribeSuccess(t, apiAddr) },
		},
		{
			Name: "unknown project",
			Func: func(*testing.T) { testUnknownProject(t, apiAddr) },
		},
		{
			Name: "admin: metrics",
			Func: func(*testing.T) { testAdminMetrics(t, adminPort) },
		},
	} {

		if !t.Run(testInfo.Name, testInfo.Func) {
			return
		}
	}
}

func testSubscribeSuccess(t *testing.T, apiAddr string) {

	report := postOperation(t, apiAddr+"/v1/subscribe",
		`{"project_id":"p-1","topic":"news","tokens":["token1","token2"]}`,
		http.StatusOK)

	require.Equal(t,
		&topic.Response{
			SuccessCount: 2,
			Errors:       []*topic.ErrorInfo{},
		},
		report)
}

func testSubscribePartialFailure(t *testing.T, apiAddr string) {

	report := postOperation(t, apiAddr+"/v1/subscribe",
		`{"project_id":"p-1","topic":"news","tokens":["token1","bad-token","token3"]}`,
		http.StatusOK)

	require.Equal(t,
		&topic.Response{
			SuccessCount: 2,
			Errors: []*topic.ErrorInfo{
				{Index: 1, Reason: topic.ReasonNotRegistered},
			},
		},
		report)
}

func testUnsubscribeSuccess(t *testing.T, apiAddr string) {

	report := postOperation(t, apiAddr+"/v1/unsubscribe",
		`{"project_id":"p-1","topic":"/topics/news","tokens":["token1"]}`,
		http.StatusOK)

	require.Equal(t,
		&topic.Response{
			SuccessCount: 1,
			Errors:       []*topic.ErrorInfo{},
		},
		report)
}

func testUnknownProject(t *testing.T, apiAddr string) {

	res, err := http.Post(apiAddr+"/v1/subscribe", "application/json",
		bytes.NewReader([]byte(`{"project_id":"p-unknown","topic":"news","tokens":["token1"]}`)))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func testAdminMetrics(t *testing.T, adminPort string) {

	res, err := http.Get("http://" + net.JoinHostPort("127.0.0.1", adminPort) + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := ioutil.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "topic_processed_ops")
}

func postOperation(t *testing.T, url, body string, statusCode int) *topic.Response {
	t.Helper()

	res, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, statusCode, res.StatusCode)

	report := &topic.Response{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(report))

	return report
}

func waitForService(t *testing.T, url string) {
	t.Helper()

	for i := 0; i < 50; i++ {
		res, err := http.Post(url, "application/json", bytes.NewReader([]byte(`{}`)))
		if err == nil {
			res.Body.Close()
			return
		}

		time.Sleep(time.Millisecond * 100)
	}

	t.Fatal("service is not ready:", url)
}

func getFreePort(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, port, err := net.SplitHostPort(address)
	require.NoError(t, err)

	return port
}

// saveRealishServiceAccount stores a service account with a generated
// private key and a local token endpoint
func saveRealishServiceAccount(t *testing.T, tokenURI string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keyPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	account := map[string]string{
		"type":           "service_account",
		"project_id":     "p-test",
		"private_key_id": "key-id",
		"private_key":    string(keyPem),
		"client_email":   "test@p-test.iam.gserviceaccount.com",
		"client_id":      "client-id",
		"token_uri":      tokenURI,
	}

	data, err := json.Marshal(account)
	require.NoError(t, err)

	const file = "service-account-svc-test.json"
	require.NoError(t, ioutil.WriteFile(file, data, os.ModePerm))

	return file
}

func saveServiceConfig(t *testing.T, apiPort, adminPort, accountPath, endpoint string) string {
	t.Helper()

	fileData := `
api-port: ` + apiPort + `
http-port: ` + adminPort + `
topic:
  - project-id: p-1
    service-account: ` + accountPath + `
    endpoint: ` + endpoint + `
    timeout: 2s
    workers: 2
`

	const file = "service-config-test.yaml"
	require.NoError(t, ioutil.WriteFile(file, []byte(fileData), os.ModePerm))

	return file
}
