package crunchbase

import (
	"strconv"
	"strings"
	"time"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

type valueField struct {
	Value string `json:"value"`
}

type moneyField struct {
	ValueUSD *int64 `json:"value_usd"`
}

type locationField struct {
	LocationType string `json:"location_type"`
	Value        string `json:"value"`
}

type entityResponse struct {
	Properties struct {
		Identifier          valueField      `json:"identifier"`
		ShortDescription    string          `json:"short_description"`
		LocationIdentifiers []locationField `json:"location_identifiers"`
		WebsiteURL          string          `json:"website_url"`
		CompanyType         string          `json:"company_type"`
		FundingTotal        *moneyField     `json:"funding_total"`
		NumAcquisitions     int             `json:"num_acquisitions"`
		NumEmployeesEnum    string          `json:"num_employees_enum"`
		StockExchangeSymbol string          `json:"stock_exchange_symbol"`
		StockSymbol         *valueField     `json:"stock_symbol"`
		LinkedIn            *valueField     `json:"linkedin"`
		Twitter             *valueField     `json:"twitter"`
		Categories          []valueField    `json:"categories"`
	} `json:"properties"`
	Cards struct {
		RaisedFundingRounds []struct {
			AnnouncedOn    string      `json:"announced_on"`
			InvestmentType string      `json:"investment_type"`
			MoneyRaised    *moneyField `json:"money_raised"`
		} `json:"raised_funding_rounds"`
	} `json:"cards"`
}

func (r *entityResponse) toDomain(generatedAt time.Time) *domain.CrunchbaseData {
	p := r.Properties
	data := &domain.CrunchbaseData{
		Name:          p.Identifier.Value,
		Description:   p.ShortDescription,
		HomepageURL:   p.WebsiteURL,
		CompanyType:   p.CompanyType,
		Acquisitions:  p.NumAcquisitions,
		StockExchange: p.StockExchangeSymbol,
		GeneratedAt:   generatedAt,
	}

	for _, loc := range p.LocationIdentifiers {
		switch loc.LocationType {
		case "city":
			data.City = loc.Value
		case "region":
			data.Region = loc.Value
		case "country":
			data.Country = loc.Value
		}
	}
	if p.FundingTotal != nil && p.FundingTotal.ValueUSD != nil {
		data.Funding = *p.FundingTotal.ValueUSD
	}
	data.NumEmployeesMin, data.NumEmployeesMax = employeesRange(p.NumEmployeesEnum)
	if p.StockSymbol != nil {
		data.Ticker = p.StockSymbol.Value
	}
	if p.LinkedIn != nil {
		data.LinkedInURL = p.LinkedIn.Value
	}
	if p.Twitter != nil {
		data.TwitterURL = p.Twitter.Value
	}
	for _, category := range p.Categories {
		data.Categories = append(data.Categories, category.Value)
	}

	for _, round := range r.Cards.RaisedFundingRounds {
		fr := domain.FundingRound{Kind: round.InvestmentType}
		if round.MoneyRaised != nil {
			fr.Amount = round.MoneyRaised.ValueUSD
		}
		if ts, err := time.Parse(time.DateOnly, round.AnnouncedOn); err == nil {
			fr.AnnouncedOn = &ts
		}
		data.FundingRounds = append(data.FundingRounds, fr)
	}

	return data
}

// employeesRange decodes enums such as "c_00051_00100" and "c_10001_max".
func employeesRange(enum string) (lo, hi int) {
	parts := strings.Split(enum, "_")
	if len(parts) != 3 || parts[0] != "c" {
		return 0, 0
	}
	lo, _ = strconv.Atoi(parts[1])
	if parts[2] != "max" {
		hi, _ = strconv.Atoi(parts[2])
	}
	return lo, hi
}
