package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBody caps how much of a response an adapter will read.
const maxBody = 4 << 20

// getJSON issues a GET and decodes a JSON body into out. It returns the
// HTTP status so callers can special-case 204 No Content.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &FetchError{Code: CodeConfig, Message: "bad request url", Err: err}
	}
	for k, v := range header {
		req.Header[k] = v
	}
	return doJSON(client, req, out)
}

// doJSON sends req and decodes a 2xx JSON body into out. Non-2xx statuses
// become CodeStatus errors; transport failures are classified by
// AsFetchError.
func doJSON(client *http.Client, req *http.Request, out any) (int, error) {
	req.Header.Set("User-Agent", UserAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, AsFetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, &FetchError{
			Code:    CodeStatus,
			Message: fmt.Sprintf("%s %s returned %s", req.Method, req.URL.Host, resp.Status),
		}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return resp.StatusCode, AsFetchError(ctxErr)
		}
		return resp.StatusCode, &FetchError{Code: CodeDecode, Message: "decode " + req.URL.Path, Err: err}
	}
	return resp.StatusCode, nil
}

// partial collects per-item failures for adapters that fan out over
// several upstream requests (feeds, leagues, symbols). A widget only fails
// when every item failed.
type partial struct {
	failed []string
	errs   []error
}

func (p *partial) fail(name string, err error) {
	p.failed = append(p.failed, name)
	p.errs = append(p.errs, err)
}

// result returns nil if at least one of total items succeeded, otherwise
// the first failure annotated with the failure count.
func (p *partial) result(total int) error {
	if total == 0 || len(p.failed) < total {
		return nil
	}
	fe := AsFetchError(p.errs[0])
	if total == 1 {
		return fe
	}
	return &FetchError{
		Code:    fe.Code,
		Message: fmt.Sprintf("all %d requests failed (first: %s)", total, fe.Message),
		Err:     fe,
	}
}
