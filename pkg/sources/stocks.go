package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// YahooChartAPI is the unauthenticated chart endpoint used for quotes.
const YahooChartAPI = "https://query1.finance.yahoo.com/v8/finance/chart"

// Stocks fetches a quote per configured symbol.
type Stocks struct {
	client  *http.Client
	baseURL string
	symbols []string
}

// NewStocks builds the adapter for a stocks widget.
func NewStocks(w config.WidgetConfig, opts ...Option) *Stocks {
	o := buildOptions(YahooChartAPI, opts)
	symbols := make([]string, 0, len(w.Symbols))
	for _, s := range w.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return &Stocks{client: o.client, baseURL: o.baseURL, symbols: symbols}
}

// Kind returns KindStocks.
func (s *Stocks) Kind() Kind { return KindStocks }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch requests each symbol in order. A symbol that fails is listed in
// Quotes.Failed; the fetch only fails when every symbol does.
func (s *Stocks) Fetch(ctx context.Context) (Payload, error) {
	if len(s.symbols) == 0 {
		return nil, Errorf(CodeConfig, "no symbols configured")
	}

	var out Quotes
	var p partial
	for _, sym := range s.symbols {
		q, err := s.quote(ctx, sym)
		if err != nil {
			if ctx.Err() != nil {
				return nil, AsFetchError(ctx.Err())
			}
			p.fail(sym, err)
			continue
		}
		out.Items = append(out.Items, q)
	}
	if err := p.result(len(s.symbols)); err != nil {
		return nil, err
	}
	out.Failed = p.failed
	return out, nil
}

func (s *Stocks) quote(ctx context.Context, sym string) (Quote, error) {
	var resp chartResponse
	u := s.baseURL + "/" + url.PathEscape(sym) + "?interval=1d&range=1d"
	if _, err := getJSON(ctx, s.client, u, nil, &resp); err != nil {
		return Quote{}, err
	}
	if resp.Chart.Error != nil {
		return Quote{}, Errorf(CodeStatus, "%s: %s", sym, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return Quote{}, Errorf(CodeDecode, "%s: empty chart result", sym)
	}

	m := resp.Chart.Result[0].Meta
	prev := m.ChartPreviousClose
	if prev == 0 {
		prev = m.PreviousClose
	}
	q := Quote{Symbol: sym, Price: m.RegularMarketPrice, Currency: m.Currency}
	if prev != 0 {
		q.Change = m.RegularMarketPrice - prev
		q.ChangePercent = q.Change / prev * 100
	}
	return q, nil
}
