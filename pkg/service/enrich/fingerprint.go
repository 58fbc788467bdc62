package enrich

import (
	_ "embed"
	"net/http"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

//go:embed fingerprints.yaml
var defaultFingerprintsYAML []byte

// Fingerprint identifies a CDN or reverse proxy from response headers.
type Fingerprint struct {
	Name    string   `yaml:"name"`
	Server  string   `yaml:"server"`
	Headers []string `yaml:"headers"`
}

type fingerprintFile struct {
	Fingerprints []Fingerprint `yaml:"fingerprints"`
}

func (x Fingerprint) Match(h http.Header) bool {
	if x.Server != "" {
		if strings.Contains(strings.ToLower(h.Get("Server")), strings.ToLower(x.Server)) {
			return true
		}
	}
	for _, name := range x.Headers {
		if h.Get(name) != "" {
			return true
		}
	}
	return false
}

type Fingerprints []Fingerprint

func (x Fingerprints) Match(h http.Header) bool {
	for _, fp := range x {
		if fp.Match(h) {
			return true
		}
	}
	return false
}

// DefaultFingerprints returns the embedded fingerprint list.
func DefaultFingerprints() Fingerprints {
	fps, err := ParseFingerprints(defaultFingerprintsYAML)
	if err != nil {
		panic("embedded fingerprints are broken: " + err.Error())
	}
	return fps
}

func ParseFingerprints(data []byte) (Fingerprints, error) {
	var file fingerprintFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse fingerprints")
	}

	for i, fp := range file.Fingerprints {
		if fp.Server == "" && len(fp.Headers) == 0 {
			return nil, goerr.New("fingerprint has neither server nor headers",
				goerr.V("index", i),
				goerr.V("name", fp.Name))
		}
	}

	return file.Fingerprints, nil
}

// LoadFingerprints reads fingerprints from path, or returns the embedded
// defaults when path is empty.
func LoadFingerprints(path string) (Fingerprints, error) {
	if path == "" {
		return DefaultFingerprints(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fingerprint file", goerr.V("path", path))
	}

	fps, err := ParseFingerprints(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid fingerprint file", goerr.V("path", path))
	}
	return fps, nil
}
