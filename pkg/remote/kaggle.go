package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	KaggleConfig        = "~/.kaggle/kaggle.json"
	KaggleKeyFileEnvVar = "KAGGLE_KEY_FILE"
	KaggleApiEndpoint   = "https://www.kaggle.com/api/v1"

	kaggleRedirectExpiry = time.Minute * 5 // real URLs typically last for much longer
)

type kaggleCredentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func getKaggleCredentials() (*kaggleCredentials, error) {
	filePath := os.Getenv(KaggleKeyFileEnvVar)
	if filePath == "" {
		filePath = KaggleConfig
	}
	filePath, err := homedir.Expand(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	creds := &kaggleCredentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

type kaggleDownload struct {
	url       string
	expiresAt time.Time
}

var _ Fetcher = &KaggleFetcher{}

// KaggleFetcher downloads kaggle://<owner>/<dataset> archives.
type KaggleFetcher struct {
	endpoint string
	client   *http.Client

	l     *sync.Mutex
	cache map[string]kaggleDownload
}

func NewKaggleFetcher(endpoint string, client *http.Client) *KaggleFetcher {
	if endpoint == "" {
		endpoint = KaggleApiEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &KaggleFetcher{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   client,
		l:        &sync.Mutex{},
		cache:    make(map[string]kaggleDownload),
	}
}

func (k *KaggleFetcher) apiUrl(uri string) (string, error) {
	parts, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	slug := parts.Host
	dataset := strings.TrimPrefix(parts.EscapedPath(), "/")
	if slug == "" || dataset == "" {
		return "", fmt.Errorf("%w: expected kaggle://<owner>/<dataset>, got %s", ErrInvalidURI, uri)
	}
	return fmt.Sprintf("%s/datasets/download/%s/%s",
		k.endpoint,
		url.QueryEscape(slug),
		url.QueryEscape(dataset)), nil
}

func (k *KaggleFetcher) fetchDatasetUrl(ctx context.Context, uri string) (string, error) {
	creds, err := getKaggleCredentials()
	if err != nil {
		return "", err
	}
	apiUrl, err := k.apiUrl(uri)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiUrl, nil)
	if err != nil {
		return "", err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Basic %s", basicAuth(creds.Username, creds.Key)))
	client := &http.Client{
		Transport: k.client.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	response, err := client.Do(req)
	if err != nil {
		return "", err
	}
	_ = response.Body.Close()
	if response.StatusCode != http.StatusFound {
		slog.Warn("kaggle.Resolve", "uri", uri, "status", response.StatusCode)
		return "", fmt.Errorf("%w: %s", ErrDoesNotExist, uri)
	}
	return response.Header.Get("Location"), nil
}

func (k *KaggleFetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	var datasetUrl string
	k.l.Lock()
	if cached, ok := k.cache[uri]; ok && time.Now().Before(cached.expiresAt) {
		datasetUrl = cached.url
	}
	if datasetUrl == "" {
		var err error
		datasetUrl, err = k.fetchDatasetUrl(ctx, uri)
		if err != nil {
			k.l.Unlock()
			return nil, err
		}
		k.cache[uri] = kaggleDownload{url: datasetUrl, expiresAt: time.Now().Add(kaggleRedirectExpiry)}
	}
	k.l.Unlock()
	return httpGet(ctx, k.client, "kaggle.Get", datasetUrl, nil)
}
