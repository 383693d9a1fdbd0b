package mappers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/dto"
)

// Storefronts whose booking host does not follow the www -> shop convention.
var redirects = map[string]string{
	"https://es-us.flixbus.com": "https://shop.flixbus.com",
	"https://fr.flixbus.be":     "https://shop.flixbus.be",
	"https://fr.flixbus.ch":     "https://shop.flixbus.ch",
	"https://it.flixbus.ch":     "https://shop.flixbus.ch",
	"https://tr.flixbus.com":    "https://shop.global.flixbus.com",
}

const shopLabel = "shop"

func ToStorefronts(links []dto.LanguageLink) []models.Storefront {
	storefronts := make([]models.Storefront, 0, len(links))
	for _, link := range links {
		href := strings.TrimSpace(link.Href)
		if href == "" {
			continue
		}
		storefronts = append(storefronts, ApplyRedirect(models.Storefront{
			URL:   strings.TrimRight(href, "/"),
			Label: strings.TrimSpace(link.Title),
		}))
	}
	return storefronts
}

func ApplyRedirect(storefront models.Storefront) models.Storefront {
	if target, ok := redirects[strings.TrimRight(storefront.URL, "/")]; ok {
		storefront.URL = target
	}
	return storefront
}

// ShopURL derives the booking host from a storefront URL: a leading www label
// becomes shop, and hosts without a shop label get one prepended.
func ShopURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse storefront url: %w", err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", fmt.Errorf("storefront url %q has no scheme or host", base)
	}

	labels := strings.Split(u.Hostname(), ".")
	switch {
	case labels[0] == "www":
		labels[0] = shopLabel
	case !hasLabel(labels, shopLabel):
		labels = append([]string{shopLabel}, labels...)
	}

	host := strings.Join(labels, ".")
	if port := u.Port(); port != "" {
		host += ":" + port
	}

	return u.Scheme + "://" + host + strings.TrimRight(u.Path, "/"), nil
}

func SearchURL(shopURL string, itinerary models.Itinerary) string {
	q := url.Values{}
	q.Set("departureCity", itinerary.DepartureCity)
	q.Set("arrivalCity", itinerary.ArrivalCity)
	q.Set("rideDate", itinerary.RideDateString())
	q.Set("adult", strconv.Itoa(itinerary.Adults))
	return strings.TrimRight(shopURL, "/") + "/search?" + q.Encode()
}

func hasLabel(labels []string, want string) bool {
	for _, label := range labels {
		if label == want {
			return true
		}
	}
	return false
}
