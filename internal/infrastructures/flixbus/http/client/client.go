package flixbus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/dto"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/mappers"
)

const (
	languageSwitcherSelector = ".language-switcher li"
	activeCurrencySelector   = ".currency-switch span.active"
	directResultsSelector    = "#results-group-container-direct > div:nth-child(%d)"
	totalPriceSelector       = "div.col-xs-12.col-sm-4.col-md-12.col-lg-5.total > span"
)

type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %s", e.URL, e.Status)
}

type Client struct {
	rootURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(rootURL, userAgent string, httpClient *http.Client) *Client {
	if strings.TrimSpace(rootURL) == "" {
		rootURL = "https://www.flixbus.com/"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}

	return &Client{
		rootURL:    strings.TrimSpace(rootURL),
		userAgent:  strings.TrimSpace(userAgent),
		httpClient: httpClient,
	}
}

// DiscoverDomains reads the language switcher of the root page and returns
// every localized storefront it links to.
func (c *Client) DiscoverDomains(ctx context.Context) ([]models.Storefront, error) {
	doc, err := c.fetch(ctx, c.rootURL)
	if err != nil {
		return nil, fmt.Errorf("fetch root page: %w", err)
	}

	links := make([]dto.LanguageLink, 0)
	doc.Find(languageSwitcherSelector).Each(func(_ int, li *goquery.Selection) {
		href, _ := li.Find("a").First().Attr("href")
		links = append(links, dto.LanguageLink{
			Href:  href,
			Title: li.Text(),
		})
	})

	storefronts := mappers.ToStorefronts(links)
	if len(storefronts) == 0 {
		return nil, fmt.Errorf("%s: %w", c.rootURL, derr.ErrNavigationNotFound)
	}

	return storefronts, nil
}

// GetPrice fetches the search page of the storefront's shop host and reads
// the price of the itinerary's connection.
func (c *Client) GetPrice(ctx context.Context, storefront models.Storefront, itinerary models.Itinerary) (models.Price, error) {
	storefront = mappers.ApplyRedirect(storefront)

	shopURL, err := mappers.ShopURL(storefront.URL)
	if err != nil {
		return models.Price{}, err
	}
	searchURL := mappers.SearchURL(shopURL, itinerary)

	doc, err := c.fetch(ctx, searchURL)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return models.Price{}, fmt.Errorf("%w: %v", derr.ErrPriceUnavailable, statusErr)
		}
		return models.Price{}, err
	}

	return mappers.ExtractPrice(parseSearchPage(doc, itinerary.Connection))
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("flixbus request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, Status: resp.Status, Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", rawURL, err)
	}

	return doc, nil
}

func parseSearchPage(doc *goquery.Document, connection int) dto.SearchPage {
	page := dto.SearchPage{}

	if active := doc.Find(activeCurrencySelector); active.Length() > 0 {
		code := strings.TrimSpace(active.First().Text())
		page.Currency = dto.CurrencyWidget{Code: code, Present: code != ""}
	}

	row := doc.Find(fmt.Sprintf(directResultsSelector, connection))
	if row.Length() == 0 {
		return page
	}
	page.RowFound = true
	page.PriceText = strings.TrimSpace(row.First().Find(totalPriceSelector).First().Text())

	return page
}
