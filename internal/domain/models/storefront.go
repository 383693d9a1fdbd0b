package models

type Storefront struct {
	URL   string
	Label string
}
