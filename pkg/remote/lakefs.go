package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	lakeFSDefaultConfigLocation = "~/.lakectl.yaml"
	lakeFSConfigEnvVar          = "LAKECTL_CONFIG"
	lakeFSApiPrefix             = "/api/v1"
	lakeFSEnvAccessKeyId        = "LAKECTL_ACCESS_KEY_ID"
	lakeFSEnvSecretAccessKey    = "LAKECTL_SECRET_ACCESS_KEY"
	lakeFSEnvEndpointUrl        = "LAKECTL_ENDPOINT_URL"
)

var (
	ErrLakeFSError = errors.New("lakeFS API Error")
)

type LakeFSConfig struct {
	Credentials struct {
		AccessKeyId     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
	} `yaml:"credentials"`

	Server struct {
		EndpointURL string `yaml:"endpoint_url"`
	} `yaml:"server"`
}

type lakeFSInstallationConfig struct {
	StorageConfig struct {
		PreSignSupport bool `json:"pre_sign_support"`
	} `json:"storage_config"`
}

type lakeFSObjectStats struct {
	PhysicalAddress       string `json:"physical_address"`
	PhysicalAddressExpiry *int64 `json:"physical_address_expiry,omitempty"`
}

func loadLakefsConfigFromEnv() (*LakeFSConfig, error) {
	accessKeyId := os.Getenv(lakeFSEnvAccessKeyId)
	secretAccessKey := os.Getenv(lakeFSEnvSecretAccessKey)
	endpointUrl := os.Getenv(lakeFSEnvEndpointUrl)
	if accessKeyId != "" && secretAccessKey != "" && endpointUrl != "" {
		cfg := &LakeFSConfig{}
		cfg.Credentials.AccessKeyId = accessKeyId
		cfg.Credentials.SecretAccessKey = secretAccessKey
		cfg.Server.EndpointURL = endpointUrl
		normalizeLakeFSEndpoint(cfg)
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: no configuration found", ErrLakeFSError)
}

// LoadLakeFSConfig reads lakectl's config file, falling back to LAKECTL_* environment variables.
func LoadLakeFSConfig() (*LakeFSConfig, error) {
	configLocation := lakeFSDefaultConfigLocation
	configLocationFromEnv := os.Getenv(lakeFSConfigEnvVar)
	if configLocationFromEnv != "" {
		configLocation = configLocationFromEnv
	}
	configPath, err := homedir.Expand(configLocation)
	if err != nil {
		return nil, err
	}
	cfg := &LakeFSConfig{}
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return loadLakefsConfigFromEnv()
	} else if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	normalizeLakeFSEndpoint(cfg)
	return cfg, nil
}

func normalizeLakeFSEndpoint(cfg *LakeFSConfig) {
	cfg.Server.EndpointURL = strings.TrimSuffix(cfg.Server.EndpointURL, "/")
	if !strings.HasSuffix(cfg.Server.EndpointURL, lakeFSApiPrefix) {
		cfg.Server.EndpointURL += lakeFSApiPrefix
	}
}

func (cfg *LakeFSConfig) authHeader() http.Header {
	h := http.Header{}
	h.Set("Authorization", fmt.Sprintf("Basic %s",
		basicAuth(cfg.Credentials.AccessKeyId, cfg.Credentials.SecretAccessKey)))
	return h
}

type presignedURL struct {
	url     string
	expires time.Time
}

var _ Fetcher = &LakeFSFetcher{}

type LakeFSFetcher struct {
	client *http.Client

	l                *sync.Mutex
	cfg              *LakeFSConfig
	preSignSupported *bool
	cachedUrls       map[string]presignedURL
}

// NewLakeFSFetcher reads lakefs://repo/ref/path URIs. With a nil cfg the lakectl
// configuration is loaded on first use.
func NewLakeFSFetcher(cfg *LakeFSConfig, client *http.Client) *LakeFSFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg != nil {
		normalizeLakeFSEndpoint(cfg)
	}
	return &LakeFSFetcher{
		client:     client,
		l:          &sync.Mutex{},
		cfg:        cfg,
		cachedUrls: make(map[string]presignedURL),
	}
}

func (f *LakeFSFetcher) setup(ctx context.Context) (*LakeFSConfig, bool, error) {
	f.l.Lock()
	defer f.l.Unlock()
	if f.cfg == nil {
		cfg, err := LoadLakeFSConfig()
		if err != nil {
			return nil, false, err
		}
		f.cfg = cfg
	}
	if f.preSignSupported == nil {
		supported, err := f.canPreSign(ctx, f.cfg)
		if err != nil {
			return nil, false, err
		}
		f.preSignSupported = &supported
	}
	return f.cfg, *f.preSignSupported, nil
}

func (f *LakeFSFetcher) canPreSign(ctx context.Context, cfg *LakeFSConfig) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/config", cfg.Server.EndpointURL), nil)
	if err != nil {
		return false, err
	}
	req.Header = cfg.authHeader()
	response, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = response.Body.Close()
	}()
	if response.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: got HTTP %d getting server config",
			ErrLakeFSError, response.StatusCode)
	}
	installationConfig := &lakeFSInstallationConfig{}
	err = json.NewDecoder(response.Body).Decode(installationConfig)
	if err != nil {
		return false, err
	}
	return installationConfig.StorageConfig.PreSignSupport, nil
}

type lakeFSUri struct {
	repo   string
	ref    string
	object string
}

func parseLakeFSUri(uri string) (*lakeFSUri, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	repo := parsed.Host
	pth := path.Clean(parsed.Path)
	pth = strings.TrimPrefix(pth, "/")
	pathParts := strings.SplitN(pth, "/", 2)
	if repo == "" || len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return nil, fmt.Errorf("%w: expected lakefs://<repo>/<ref>/<path>, got %s", ErrInvalidURI, uri)
	}
	return &lakeFSUri{
		repo:   repo,
		ref:    pathParts[0],
		object: pathParts[1],
	}, nil
}

func (f *LakeFSFetcher) objectsUrl(cfg *LakeFSConfig, addr *lakeFSUri, suffix string, presign bool) string {
	q := url.Values{}
	q.Set("path", addr.object)
	q.Set("presign", fmt.Sprintf("%t", presign))
	return fmt.Sprintf("%s/repositories/%s/refs/%s/objects%s?%s",
		cfg.Server.EndpointURL, url.PathEscape(addr.repo), url.PathEscape(addr.ref), suffix, q.Encode())
}

func (f *LakeFSFetcher) statPresigned(ctx context.Context, cfg *LakeFSConfig, addr *lakeFSUri) (presignedURL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.objectsUrl(cfg, addr, "/stat", true), nil)
	if err != nil {
		return presignedURL{}, err
	}
	req.Header = cfg.authHeader()
	response, err := f.client.Do(req)
	if err != nil {
		return presignedURL{}, err
	}
	defer func() {
		_ = response.Body.Close()
	}()
	if response.StatusCode == http.StatusNotFound {
		return presignedURL{}, fmt.Errorf("%w: %s", ErrDoesNotExist, addr.object)
	}
	if response.StatusCode != http.StatusOK {
		return presignedURL{}, fmt.Errorf("%w: got HTTP %d getting object URL",
			ErrLakeFSError, response.StatusCode)
	}
	stat := &lakeFSObjectStats{}
	if err = json.NewDecoder(response.Body).Decode(stat); err != nil {
		return presignedURL{}, err
	}
	expiresTimestamp := intVal(stat.PhysicalAddressExpiry)
	if expiresTimestamp == 0 {
		return presignedURL{}, fmt.Errorf("%w: could not get pre-signed URL", ErrLakeFSError)
	}
	return presignedURL{
		url:     stat.PhysicalAddress,
		expires: time.Unix(expiresTimestamp, 0).UTC(),
	}, nil
}

func intVal(i *int64) (x int64) {
	if i == nil {
		return x
	}
	return *i
}

func (f *LakeFSFetcher) getURL(ctx context.Context, cfg *LakeFSConfig, uri string, addr *lakeFSUri) (string, error) {
	f.l.Lock()
	defer f.l.Unlock()
	if cached, ok := f.cachedUrls[uri]; ok && cached.expires.After(time.Now()) {
		return cached.url, nil
	}
	signed, err := f.statPresigned(ctx, cfg, addr)
	if err != nil {
		return "", err
	}
	f.cachedUrls[uri] = signed
	return signed.url, nil
}

func (f *LakeFSFetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	addr, err := parseLakeFSUri(uri)
	if err != nil {
		return nil, err
	}
	cfg, preSignSupported, err := f.setup(ctx)
	if err != nil {
		return nil, err
	}
	if !preSignSupported {
		return httpGet(ctx, f.client, "lakefs.Get", f.objectsUrl(cfg, addr, "", false), cfg.authHeader())
	}
	signedUrl, err := f.getURL(ctx, cfg, uri, addr)
	if err != nil {
		return nil, err
	}
	return httpGet(ctx, f.client, "lakefs.Get", signedUrl, nil)
}
