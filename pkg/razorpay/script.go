package razorpay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// CheckoutScriptURL is the hosted checkout's client script.
const CheckoutScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

const scriptLoadTimeout = 10 * time.Second

// ScriptLoader fetches the checkout script once. The outcome, success or
// failure, is kept for the loader's lifetime and never retried.
type ScriptLoader struct {
	url    string
	client *http.Client

	once sync.Once
	done chan struct{}
	err  error
}

func NewScriptLoader(client *http.Client, url string) *ScriptLoader {
	if client == nil {
		client = http.DefaultClient
	}

	if url == "" {
		url = CheckoutScriptURL
	}

	return &ScriptLoader{
		url:    url,
		client: client,
		done:   make(chan struct{}),
	}
}

// Load starts the fetch on first call and waits for it to finish.
func (l *ScriptLoader) Load(ctx context.Context) error {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			l.err = l.fetch(context.WithoutCancel(ctx))
		}()
	})

	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State reports whether loading finished and with what error.
func (l *ScriptLoader) State() (bool, error) {
	select {
	case <-l.done:
		return true, l.err
	default:
		return false, nil
	}
}

func (l *ScriptLoader) fetch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, scriptLoadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create script request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load checkout script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to load checkout script: status %d", resp.StatusCode)
	}

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read checkout script: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("failed to load checkout script: empty body")
	}

	return nil
}
