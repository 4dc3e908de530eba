package donordata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// FetchError reports that a dataset could not be loaded, either because the
// endpoint was unreachable or because the body was not the expected JSON
// array. A failed fetch fails the whole load; there is no partial dashboard.
type FetchError struct {
	Source string
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Load fetches the pledges and payments datasets concurrently. Both must
// succeed; the first failure cancels the other fetch and is returned as a
// *FetchError.
func Load(ctx context.Context, client *http.Client, pledgesURL, paymentsURL string) ([]PledgeRecord, []PaymentRecord, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var (
		pledges  []PledgeRecord
		payments []PaymentRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pledges, err = fetchJSON[PledgeRecord](gctx, client, "pledges", pledgesURL)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = fetchJSON[PaymentRecord](gctx, client, "payments", paymentsURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pledges, payments, nil
}

func fetchJSON[T any](ctx context.Context, client *http.Client, source, url string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: source, URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: fmt.Errorf("decode body: %w", err)}
	}
	return records, nil
}
