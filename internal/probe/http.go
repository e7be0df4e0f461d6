package probe

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"svctopo/internal/domain"
)

// httpProbe composes {scheme}://{host}:{port}{healthcheckPath} and issues
// the configured method. TLS verification and redirect-following are both
// opt-in per spec, and the response status code is returned untouched —
// classify.Classify applies statusMapping / expectedStatus on top of it.
func httpProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	scheme := "http"
	if spec.Method == domain.MethodHTTPS {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s:%d%s", scheme, spec.Host, spec.Port, spec.HealthcheckPath)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !spec.SSLVerify},
	}
	client := &http.Client{Transport: transport}
	if !spec.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	method := string(spec.HTTPMethod)
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if spec.Body != "" && (method == http.MethodPost || method == http.MethodPut) {
		body = bytes.NewBufferString(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return deadOnErr(fmt.Errorf("build request: %w", err))
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return deadOnErr(fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return domain.ProbeOutcome{Status: domain.StatusAlive, StatusCode: resp.StatusCode}
}
